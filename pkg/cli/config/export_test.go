package config

// NewRepositoryForTest builds a Repository config without parsing flags
func NewRepositoryForTest(backend, projectID, databaseID, prefix string) *Repository {
	return &Repository{
		backend:          backend,
		projectID:        projectID,
		databaseID:       databaseID,
		collectionPrefix: prefix,
	}
}

// NewSlackForTest creates a Slack config for testing purposes
func NewSlackForTest(botToken, channelID, apiURL string) *Slack {
	return &Slack{
		botToken:  botToken,
		channelID: channelID,
		apiURL:    apiURL,
	}
}

// NewLoggerForTest creates a Logger config for testing purposes
func NewLoggerForTest(level, format, output string) *Logger {
	return &Logger{
		level:  level,
		format: format,
		output: output,
	}
}

var ParseGCSPath = parseGCSPath

// NewExportForTest creates an Export config for testing purposes
func NewExportForTest(output string) *Export {
	return &Export{output: output}
}
