package config

// isodateconfig-section: Date Encoding Configuration
const (

	// isodateconfig-prop: timezone assumed for dates without an explicit offset, `Z` or `±HH:MM` | Z
	PropDefaultTimezone = "isodate.default-timezone"

	// isodateconfig-prop: presentation class used by encode, `iso8601` or `gridDate` | iso8601
	PropPresentation = "isodate.presentation"

	// isodateconfig-prop: IANA zone name that gridDate values are shifted into |
	PropTargetTimezone = "isodate.target-timezone"

	// isodateconfig-prop: wrap encoded values in the html annotation | true
	PropWrap = "isodate.wrap"
)

// isodateconfig-section: Logging Configuration
const (

	// isodateconfig-prop: log level | info
	PropLoggingLevel = "logging.level"

	// isodateconfig-prop: rolling log file, logs are only written to stderr when absent |
	PropLoggingFile = "logging.file"

	// isodateconfig-prop: max size of the rolling log file in mb | 50
	PropLoggingMaxSize = "logging.max-size"

	// isodateconfig-prop: max age of rolled log files in days | 7
	PropLoggingMaxAge = "logging.max-age"

	// isodateconfig-prop: max number of rolled log files | 3
	PropLoggingMaxBackups = "logging.max-backups"
)

// isodateconfig-section: Store Configuration
const (

	// isodateconfig-prop: database dialect, `sqlite` or `mysql` | sqlite
	PropStoreDialect = "store.dialect"

	// isodateconfig-prop: database dsn, file path for sqlite | isodate.db
	PropStoreDsn = "store.dsn"

	// isodateconfig-prop: enable WAL journal mode for sqlite | true
	PropStoreWalEnabled = "store.wal-enabled"

	// isodateconfig-prop: max number of open connections, only used by mysql | 10
	PropStoreMaxOpenConns = "store.max-open-conns"
)

// Register default values of the props above.
func registerDefaults(a *AppConfig) {
	a.SetDefProp(PropDefaultTimezone, "Z")
	a.SetDefProp(PropPresentation, "iso8601")
	a.SetDefProp(PropTargetTimezone, "")
	a.SetDefProp(PropWrap, true)
	a.SetDefProp(PropLoggingLevel, "info")
	a.SetDefProp(PropLoggingFile, "")
	a.SetDefProp(PropLoggingMaxSize, 50)
	a.SetDefProp(PropLoggingMaxAge, 7)
	a.SetDefProp(PropLoggingMaxBackups, 3)
	a.SetDefProp(PropStoreDialect, "sqlite")
	a.SetDefProp(PropStoreDsn, "isodate.db")
	a.SetDefProp(PropStoreWalEnabled, true)
	a.SetDefProp(PropStoreMaxOpenConns, 10)
}
