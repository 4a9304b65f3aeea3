package envvar

const (
	// ModelServiceEnv is the environment variable used to determine the environment
	ModelServiceEnv = "MODEL_SERVICE_ENV"

	// ModelServicePort is the environment variable used to determine the HTTP port
	ModelServicePort = "MODEL_SERVICE_PORT"

	// ModelServiceGRPCPort is the environment variable used to determine the gRPC health port
	ModelServiceGRPCPort = "MODEL_SERVICE_GRPC_PORT"

	// ModelServiceLogLevel is the environment variable used to determine the log level
	ModelServiceLogLevel = "MODEL_SERVICE_LOG_LEVEL"

	// ModelServiceLogFile is the environment variable used to enable logging to a rotated file
	ModelServiceLogFile = "MODEL_SERVICE_LOG_FILE"

	// ModelDir is the environment variable used to determine the artifact cache directory
	ModelDir = "MODEL_DIR"

	// ModelVersion is the environment variable used to select the release tag
	ModelVersion = "MODEL_VERSION"

	// ModelFetchTimeout is the environment variable used to bound release downloads
	ModelFetchTimeout = "MODEL_FETCH_TIMEOUT"

	// GitHubRepo is the environment variable used to determine the release repository
	GitHubRepo = "GITHUB_REPO"
)
