package config

// EnvPrefix is the envconfig prefix shared by every service binary.
const EnvPrefix = "motordesk"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvDBDSN  = "MOTORDESK_DB_DSN"
	EnvDBHost = "MOTORDESK_DB_HOST"
	EnvDBUser = "MOTORDESK_DB_USER"
	EnvDBName = "MOTORDESK_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
