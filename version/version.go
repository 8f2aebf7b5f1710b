package version

// Set at build time with -ldflags "-X github.com/ChristianF88/fradix/version.Version=..."
var (
	Version = "dev"
	Date    = ""
)
