// Package config loads application configuration as a validated props
// document and checks, at wiring time, that the document declares what each
// integration needs.
//
// # Definitions and mixins
//
// A Definition is a named props schema built from mixins plus the service's
// own fields. A Mixin is a capability: a named set of fields that an
// integration such as Postgres, Redis, RabbitMQ or the task queue reads.
//
//	var AppConfig = config.Define("app", []props.Field{
//	    props.Named("SIGNUP_ENABLED", props.Bool(props.Default(false))),
//	}, config.ServiceMixin, config.PostgresMixin)
//
//	cfg, err := AppConfig.Load(map[string]any{config.ServePort: 8080})
//	if err != nil {
//	    // errors.Is(err, config.ErrInvalidConfig); props.ExtractBatchError(err) lists every field
//	}
//
// Integrations call Require before touching the config. It fails with a
// *MixinError, matching ErrMixinRequired, when the definition neither
// includes the mixin nor declares all of its fields.
//
// # Sources
//
// Load reads the process environment. LoadFrom accepts any Source:
// EnvSource, MapSource, DotEnvSource (github.com/joho/godotenv), YAMLSource
// (gopkg.in/yaml.v3) or a Layered combination. Text values are converted by
// the field's property, so "8080" loads into an Int field and "a,b" into an
// Array. Explicit overrides always win and are validated as given.
//
// # Tuning structs
//
// Load, MustLoad and ForceReloadConfig parse env-tagged structs with
// github.com/caarlos0/env/v11 and cache one value per struct type.
// Integrations use them for pool sizes and timeouts that do not belong to the
// config document. LoadEnv applies .env files to the process environment and
// ResetCache clears the struct cache between tests.
package config
