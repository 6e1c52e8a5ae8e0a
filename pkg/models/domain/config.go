package domain

import "fmt"

// SourceType names the kind of item source a profile reads from.
type SourceType string

const (
	SourceMonday     SourceType = "monday"
	SourceFile       SourceType = "file"
	SourceS3         SourceType = "s3"
	SourceSnowflake  SourceType = "snowflake"
	SourceDatabricks SourceType = "databricks"
)

// ConfigProfile is one named board profile from the credentials file.
type ConfigProfile struct {
	Name     string
	Source   SourceType
	Settings map[string]string
}

// Get returns a profile setting or an empty string.
func (c ConfigProfile) Get(key string) string {
	return c.Settings[key]
}

func (c ConfigProfile) String() string {
	return fmt.Sprintf("%s:%s", c.Source, c.Name)
}
