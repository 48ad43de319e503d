package profiling

import (
	"fmt"
	"strings"
	"time"

	"github.com/getmentor/mentorship-portal/config"
	"github.com/getmentor/mentorship-portal/pkg/logger"
	"github.com/grafana/pyroscope-go"
	"go.uber.org/zap"
)

// The portal is request/response bound, so mutex and block profiles are opt-in only
var defaultProfileTypes = []pyroscope.ProfileType{
	pyroscope.ProfileCPU,
	pyroscope.ProfileAllocSpace,
	pyroscope.ProfileGoroutines,
}

var profileTypeMap = map[string][]pyroscope.ProfileType{
	"cpu":           {pyroscope.ProfileCPU},
	"alloc_space":   {pyroscope.ProfileAllocSpace},
	"alloc_objects": {pyroscope.ProfileAllocObjects},
	"goroutines":    {pyroscope.ProfileGoroutines},
	"mutex":         {pyroscope.ProfileMutexCount, pyroscope.ProfileMutexDuration},
	"block":         {pyroscope.ProfileBlockCount, pyroscope.ProfileBlockDuration},
}

// InitProfiler starts continuous profiling when enabled and returns its stop func.
func InitProfiler(cfg config.ProfilingConfig, o11y config.ObservabilityConfig, environment string) (func(), error) {
	if !cfg.Enabled {
		logger.Info("Continuous profiling disabled")
		return func() {}, nil
	}

	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		return nil, fmt.Errorf("profiling endpoint is required when profiling is enabled")
	}

	interval := time.Duration(cfg.UploadIntervalSeconds) * time.Second
	if interval <= 0 {
		interval = 15 * time.Second
	}

	profileTypes, err := parseProfileTypes(cfg.SampleTypes)
	if err != nil {
		return nil, err
	}

	applicationName := buildApplicationName(cfg.AppName, o11y, environment)

	profiler, err := pyroscope.Start(pyroscope.Config{
		ApplicationName: applicationName,
		ServerAddress:   endpoint,
		UploadRate:      interval,
		ProfileTypes:    profileTypes,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start profiler: %w", err)
	}

	logger.Info("Continuous profiling initialized",
		zap.String("application_name", applicationName),
		zap.String("endpoint", endpoint),
		zap.Duration("upload_interval", interval),
	)

	return func() {
		if stopErr := profiler.Stop(); stopErr != nil {
			logger.Error("Failed to stop profiler", zap.Error(stopErr))
		}
	}, nil
}

func parseProfileTypes(value string) ([]pyroscope.ProfileType, error) {
	if strings.TrimSpace(value) == "" {
		return defaultProfileTypes, nil
	}

	var types []pyroscope.ProfileType
	seen := map[pyroscope.ProfileType]bool{}

	for _, raw := range strings.Split(value, ",") {
		key := strings.ToLower(strings.TrimSpace(raw))
		mapped, ok := profileTypeMap[key]
		if !ok {
			return nil, fmt.Errorf("unsupported O11Y_PROFILING_SAMPLE_TYPES value: %q", key)
		}
		for _, t := range mapped {
			if !seen[t] {
				seen[t] = true
				types = append(types, t)
			}
		}
	}

	return types, nil
}

// buildApplicationName renders "app{label=value,...}" as pyroscope expects
func buildApplicationName(appName string, o11y config.ObservabilityConfig, environment string) string {
	appName = strings.TrimSpace(appName)
	if appName == "" {
		appName = "mentorship-portal"
	}

	labels := []string{
		"service_name=" + o11y.ServiceName,
		"namespace=" + o11y.ServiceNamespace,
		"environment=" + environment,
		"service_version=" + o11y.ServiceVersion,
		"instance=" + o11y.ServiceInstanceID,
	}

	return fmt.Sprintf("%s{%s}", appName, strings.Join(labels, ","))
}
