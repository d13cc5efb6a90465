package config

const (
	// DefaultProjectPath is the default project path
	DefaultProjectPath = "."
	// DefaultSuitePath is the default suite definitions path
	DefaultSuitePath = "testsuites"
	// DefaultOutputJSONFile is the default output JSON file name
	DefaultOutputJSONFile = "run-results.json"
	// DefaultOutputJSONDir is the default output directory
	DefaultOutputJSONDir = ".xtp"
	// DefaultWorkers is the default number of parallel workers
	DefaultWorkers = 4
	// DefaultHistoryLimit is the default number of history rows listed
	DefaultHistoryLimit = 20
)
