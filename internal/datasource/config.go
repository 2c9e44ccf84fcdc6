package datasource

import (
	"encoding/json"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/invopop/jsonschema"
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-trading-halt/internal/halt"
	"github.com/rxtech-lab/argo-trading-halt/internal/version"
	"github.com/rxtech-lab/argo-trading-halt/pkg/errors"
	"gopkg.in/yaml.v3"
)

// DefaultTimeZone is the exchange timezone of the halt files.
const DefaultTimeZone = "America/New_York"

// sessionTimeLayout is the HH:MM layout of the session offsets.
const sessionTimeLayout = "15:04"

type SourceConfig struct {
	DataFolder     string                  `yaml:"data_folder" json:"data_folder" jsonschema:"title=Data Folder,description=Root folder that contains equity/usa/halt,required" validate:"required"`
	TimeZone       string                  `yaml:"time_zone" json:"time_zone" jsonschema:"title=Time Zone,description=IANA timezone the halt timestamps are recorded in,required" validate:"required"`
	PreMarketStart optional.Option[string] `yaml:"pre_market_start" json:"pre_market_start" jsonschema:"title=Pre-Market Start,description=Optional HH:MM local time a re-asserted halt starts each day"`
	PostMarketEnd  optional.Option[string] `yaml:"post_market_end" json:"post_market_end" jsonschema:"title=Post-Market End,description=Optional HH:MM local time a day segment closes"`
	HostVersion    optional.Option[string] `yaml:"host_version" json:"host_version" jsonschema:"title=Host Version,description=Optional version of the host engine loading this adapter"`
}

// UnmarshalYAML implements custom unmarshaling for SourceConfig
func (c *SourceConfig) UnmarshalYAML(value *yaml.Node) error {
	type Config struct {
		DataFolder     string  `yaml:"data_folder"`
		TimeZone       string  `yaml:"time_zone"`
		PreMarketStart *string `yaml:"pre_market_start"`
		PostMarketEnd  *string `yaml:"post_market_end"`
		HostVersion    *string `yaml:"host_version"`
	}

	var config Config
	if err := value.Decode(&config); err != nil {
		return err
	}

	*c = EmptyConfig()
	c.DataFolder = config.DataFolder

	if config.TimeZone != "" {
		c.TimeZone = config.TimeZone
	}

	if config.PreMarketStart != nil {
		c.PreMarketStart = optional.Some(*config.PreMarketStart)
	}

	if config.PostMarketEnd != nil {
		c.PostMarketEnd = optional.Some(*config.PostMarketEnd)
	}

	if config.HostVersion != nil {
		c.HostVersion = optional.Some(*config.HostVersion)
	}

	return nil
}

// Validate checks required fields, the timezone, the session bounds and host compatibility.
func (c *SourceConfig) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid config", err)
	}

	if _, err := c.Location(); err != nil {
		return err
	}

	session, err := c.Session()
	if err != nil {
		return err
	}

	if err := session.Validate(); err != nil {
		return err
	}

	if c.HostVersion.IsSome() {
		if err := version.CheckHostCompatibility(c.HostVersion.Unwrap(), version.MinHostVersion); err != nil {
			return err
		}
	}

	return nil
}

// Location loads the configured timezone.
func (c *SourceConfig) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeInvalidTimeZone, err, "unknown time zone %q", c.TimeZone)
	}

	return loc, nil
}

// Session returns the default session with any configured overrides applied.
func (c *SourceConfig) Session() (halt.Session, error) {
	session := halt.DefaultSession

	if c.PreMarketStart.IsSome() {
		offset, err := parseSessionTime(c.PreMarketStart.Unwrap())
		if err != nil {
			return halt.Session{}, err
		}

		session.PreMarketStart = offset
	}

	if c.PostMarketEnd.IsSome() {
		offset, err := parseSessionTime(c.PostMarketEnd.Unwrap())
		if err != nil {
			return halt.Session{}, err
		}

		session.PostMarketEnd = offset
	}

	return session, nil
}

func parseSessionTime(raw string) (time.Duration, error) {
	t, err := time.Parse(sessionTimeLayout, strings.TrimSpace(raw))
	if err != nil {
		return 0, errors.Wrapf(errors.ErrCodeInvalidSession, err, "invalid session time %q, expected HH:MM", raw)
	}

	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, nil
}

// GenerateSchema generates a JSON schema for the SourceConfig
func (c *SourceConfig) GenerateSchema() (*jsonschema.Schema, error) {
	reflector := jsonschema.Reflector{
		RequiredFromJSONSchemaTags: true,
		ExpandedStruct:             true,
		AllowAdditionalProperties:  false,
		Mapper: func(t reflect.Type) *jsonschema.Schema {
			if t.String() == "optional.Option[string]" {
				return &jsonschema.Schema{
					Type: "string",
				}
			}

			return nil
		},
	}

	schema := reflector.Reflect(c)

	schema.Title = "trading-halt-source-config"
	schema.Description = "Configuration schema for the trading halt data source"
	schema.Version = "http://json-schema.org/draft-07/schema#"

	return schema, nil
}

// GenerateSchemaJSON generates a JSON schema string for the SourceConfig
func (c *SourceConfig) GenerateSchemaJSON() (string, error) {
	schema, err := c.GenerateSchema()
	if err != nil {
		return "", err
	}

	schemaBytes, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return "", err
	}

	return string(schemaBytes), nil
}

// LoadConfig reads and validates a YAML config file.
func LoadConfig(path string) (SourceConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return SourceConfig{}, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "failed to read config %s", path)
	}

	var config SourceConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return SourceConfig{}, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "failed to parse config %s", path)
	}

	if err := config.Validate(); err != nil {
		return SourceConfig{}, err
	}

	return config, nil
}

// EmptyConfig returns a SourceConfig with default values
func EmptyConfig() SourceConfig {
	return SourceConfig{
		DataFolder:     "",
		TimeZone:       DefaultTimeZone,
		PreMarketStart: optional.None[string](),
		PostMarketEnd:  optional.None[string](),
		HostVersion:    optional.None[string](),
	}
}

// DefaultConfig returns the default config rooted at dataFolder.
func DefaultConfig(dataFolder string) SourceConfig {
	config := EmptyConfig()
	config.DataFolder = dataFolder

	return config
}
