package version

const (
	AppName        = "Hive Resources Bot"
	AppDescription = "Look up Hive Resources maps and models straight from Discord."
	AppFooter      = "Hive Resources"
)

// Set with -ldflags "-X github.com/keshon/hive-resources/internal/version.Version=..."
var (
	Version   = "dev"
	BuildDate = "unknown"
)
