package internal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	ssmtypes "github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"go.opentelemetry.io/otel/trace"
	"gopkg.in/yaml.v3"

	"github.com/spacelift-io/metricscalr/internal/ifaces"
)

var ErrSnapshotNotFound = errors.New("autoscaler snapshot not found")

// SnapshotStore persists the autoscaler configuration, so that a restarted
// autoscaler keeps the settings it was reconfigured with.
//
//go:generate mockery --output ./ --name SnapshotStore --filename mock_snapshot_store_test.go --outpkg internal_test
type SnapshotStore interface {
	Save(ctx context.Context, cfg Config) error

	// Load returns ErrSnapshotNotFound when nothing was saved yet.
	Load(ctx context.Context) (Config, error)
}

// FileSnapshotStore keeps the snapshot in a YAML file.
type FileSnapshotStore struct {
	Path string
}

func (s FileSnapshotStore) Save(_ context.Context, cfg Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("could not encode snapshot: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.Path), filepath.Base(s.Path)+".*")
	if err != nil {
		return fmt.Errorf("could not create snapshot file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		return errors.Join(fmt.Errorf("could not write snapshot: %w", err), tmp.Close())
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("could not write snapshot: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.Path); err != nil {
		return fmt.Errorf("could not replace snapshot file: %w", err)
	}

	return nil
}

func (s FileSnapshotStore) Load(_ context.Context) (Config, error) {
	data, err := os.ReadFile(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return Config{}, ErrSnapshotNotFound
	} else if err != nil {
		return Config{}, fmt.Errorf("could not read snapshot: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("could not decode snapshot %s: %w", s.Path, err)
	}

	return validSnapshot(cfg)
}

// SSMSnapshotStore keeps the snapshot as JSON in an SSM parameter.
type SSMSnapshotStore struct {
	SSM           ifaces.SSM
	ParameterName string
	Tracer        trace.Tracer
}

func (s *SSMSnapshotStore) Save(ctx context.Context, cfg Config) error {
	ctx, span := s.Tracer.Start(ctx, "aws.ssm.snapshot.save")
	defer span.End()

	data, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("could not encode snapshot: %w", err)
	}

	if _, err := s.SSM.PutParameter(ctx, &ssm.PutParameterInput{
		Name:      aws.String(s.ParameterName),
		Value:     aws.String(string(data)),
		Type:      ssmtypes.ParameterTypeString,
		Overwrite: aws.Bool(true),
	}); err != nil {
		return fmt.Errorf("could not save snapshot to SSM parameter %s: %w", s.ParameterName, err)
	}

	return nil
}

func (s *SSMSnapshotStore) Load(ctx context.Context) (Config, error) {
	ctx, span := s.Tracer.Start(ctx, "aws.ssm.snapshot.load")
	defer span.End()

	output, err := s.SSM.GetParameter(ctx, &ssm.GetParameterInput{
		Name: aws.String(s.ParameterName),
	})

	var notFound *ssmtypes.ParameterNotFound
	switch {
	case errors.As(err, &notFound):
		return Config{}, ErrSnapshotNotFound
	case err != nil:
		return Config{}, fmt.Errorf("could not load snapshot from SSM parameter %s: %w", s.ParameterName, err)
	case output.Parameter == nil || output.Parameter.Value == nil:
		return Config{}, ErrSnapshotNotFound
	}

	var cfg Config
	if err := json.Unmarshal([]byte(*output.Parameter.Value), &cfg); err != nil {
		return Config{}, fmt.Errorf("could not decode snapshot %s: %w", s.ParameterName, err)
	}

	return validSnapshot(cfg)
}

func validSnapshot(cfg Config) (Config, error) {
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid snapshot: %w", err)
	}

	return cfg, nil
}

// RestoreConfig returns the saved configuration if there is one for the same
// metric, and fallback otherwise.
func RestoreConfig(ctx context.Context, store SnapshotStore, fallback Config) (Config, bool, error) {
	cfg, err := store.Load(ctx)
	if errors.Is(err, ErrSnapshotNotFound) {
		return fallback, false, nil
	} else if err != nil {
		return Config{}, false, err
	}

	if cfg.Metric != fallback.Metric {
		return fallback, false, nil
	}

	return cfg, true, nil
}
