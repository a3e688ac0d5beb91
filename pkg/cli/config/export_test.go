package config

// NewGeminiForTest creates a Gemini config for testing purposes
func NewGeminiForTest(projectID, location, model string) *Gemini {
	return &Gemini{
		projectID: projectID,
		location:  location,
		model:     model,
	}
}

// NewLoggerForTest creates a Logger config for testing purposes
func NewLoggerForTest(level, format, output string) *Logger {
	return &Logger{level: level, format: format, output: output}
}

// NewSentryForTest creates a Sentry config for testing purposes
func NewSentryForTest(dsn, env string) *Sentry {
	return &Sentry{dsn: dsn, env: env}
}

// SourceForTest describes the flag values of a Source config
type SourceForTest struct {
	ConfigPath      string
	GDELTQuery      string
	GDELTMaxRecords int
	NewsAPIKey      string
	NewsAPIQuery    string
	NewsAPIPageSize int
	RSSFeeds        []string
	RSSMaxEntries   int
	Offline         bool
}

// NewSourceForTest creates a Source config for testing purposes
func NewSourceForTest(v SourceForTest) *Source {
	return &Source{
		configPath:      v.ConfigPath,
		gdeltQuery:      v.GDELTQuery,
		gdeltMaxRecords: v.GDELTMaxRecords,
		newsAPIKey:      v.NewsAPIKey,
		newsAPIQuery:    v.NewsAPIQuery,
		newsAPIPageSize: v.NewsAPIPageSize,
		rssFeeds:        v.RSSFeeds,
		rssMaxEntries:   v.RSSMaxEntries,
		disableLive:     v.Offline,
	}
}
