package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/openfroyo/provider-s3object/pkg/backend"
	"github.com/openfroyo/provider-s3object/pkg/config"
	"github.com/openfroyo/provider-s3object/pkg/handler"
	"github.com/openfroyo/provider-s3object/pkg/model"
	"github.com/openfroyo/provider-s3object/pkg/progress"
	"github.com/openfroyo/provider-s3object/pkg/telemetry"
)

// runner wires configuration, telemetry, the backend session, and the
// dispatch table for one CLI invocation.
type runner struct {
	cfg      *config.Config
	dispatch map[handler.Action]handler.HandlerFunc
	sess     *backend.Session
}

// newRunner loads configuration and builds the handler dispatch table.
func newRunner(ctx context.Context) (*runner, context.Context, error) {
	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return nil, ctx, err
		}
		cfg = loaded
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}

	logger, err := telemetry.NewLogger(cfg.Logging)
	if err != nil {
		return nil, ctx, fmt.Errorf("initializing logger: %w", err)
	}
	ctx = logger.NewComponentLogger("handler").WithContext(ctx)

	sess, err := buildSession(ctx, cfg.Backend)
	if err != nil {
		return nil, ctx, err
	}

	metrics := telemetry.NewMetrics(prometheus.NewRegistry())
	h := handler.New(metrics)

	return &runner{
		cfg:      cfg,
		dispatch: h.Dispatch(),
		sess:     sess,
	}, ctx, nil
}

// buildSession constructs the backend session capability from configuration.
func buildSession(ctx context.Context, cfg config.BackendConfig) (*backend.Session, error) {
	var loadOpts []func(*awsconfig.LoadOptions) error
	if cfg.Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(cfg.Region))
	}
	if cfg.Profile != "" {
		loadOpts = append(loadOpts, awsconfig.WithSharedConfigProfile(cfg.Profile))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("loading AWS configuration: %w", err)
	}

	var svcOpts []func(*s3.Options)
	if cfg.Endpoint != "" || cfg.UsePathStyle {
		endpoint := cfg.Endpoint
		usePathStyle := cfg.UsePathStyle
		svcOpts = append(svcOpts, func(o *s3.Options) {
			if endpoint != "" {
				o.BaseEndpoint = aws.String(endpoint)
			}
			o.UsePathStyle = usePathStyle
		})
	}

	return backend.NewSession(awsCfg, svcOpts...), nil
}

// drive runs the trampoline locally: invoke the handler and, while the
// outcome is in progress, wait the delay hint and re-invoke with the
// returned callback context. Under a real orchestrator each iteration is a
// separate handler invocation.
func drive(ctx context.Context, fn handler.HandlerFunc, sess *backend.Session, req *handler.Request) progress.Event {
	cb := handler.CallbackContext{}
	for {
		ev := fn(ctx, sess, req, cb)
		if ev.Status != progress.StatusInProgress {
			return ev
		}

		delay := time.Duration(ev.CallbackDelaySeconds) * time.Second
		select {
		case <-ctx.Done():
			return progress.Failed(ctx, progress.ErrorInternalFailure, "invocation cancelled")
		case <-time.After(delay):
		}
		cb = handler.CallbackContext(ev.CallbackContext)
	}
}

// printEvent writes the terminal outcome to stdout as JSON and returns an
// error for failed outcomes so the process exits nonzero.
func printEvent(ev progress.Event) error {
	out, err := json.MarshalIndent(ev, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(os.Stdout, string(out))

	if ev.Status == progress.StatusFailed {
		return fmt.Errorf("%s: %s", ev.ErrorCode, ev.Message)
	}
	return nil
}

// parseTags converts repeated key=value flags into model tags, preserving
// flag order.
func parseTags(pairs []string) ([]model.Tag, error) {
	tags := make([]model.Tag, 0, len(pairs))
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid tag %q, expected key=value", p)
		}
		tags = append(tags, model.Tag{Key: k, Value: v})
	}
	return tags, nil
}

// parseTagMap converts repeated key=value flags into a stack-tag map.
func parseTagMap(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	m := make(map[string]string, len(pairs))
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid tag %q, expected key=value", p)
		}
		m[k] = v
	}
	return m, nil
}
