package config

import (
	"io/fs"
	"time"
)

// -----------------------------------------------------------------------------
// Build Information
// -----------------------------------------------------------------------------

// Build variables are injected via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// UserAgent identifies the server in responses.
var UserAgent = "Go-WTime/" + Version

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName           = "Go WTime"
	AppID             = "com.github.tartampluch.go-wtime"
	LocalhostBindAddr = "127.0.0.1"
	LogFileName       = "app.log"
	EnvPrefix         = "WTIME_"
)

// -----------------------------------------------------------------------------
// Exit Codes
// -----------------------------------------------------------------------------

const (
	ExitCodeSuccess = 0
	ExitCodeError   = 1
	ExitCodeUsage   = 2
)

// -----------------------------------------------------------------------------
// System & File Permissions
// -----------------------------------------------------------------------------

const (
	// FilePermUserRW represents -rw------- (Read/Write for owner only).
	FilePermUserRW fs.FileMode = 0600

	// DirPermUserRWX represents drwx------ (Read/Write/Exec for owner only).
	DirPermUserRWX fs.FileMode = 0700

	// ChannelBufferSize defines the standard buffer size for internal signaling channels.
	ChannelBufferSize = 1
)

// -----------------------------------------------------------------------------
// CLI Flags, Commands & Descriptions
// -----------------------------------------------------------------------------

const (
	FlagVersion = "version"
	FlagDebug   = "debug"
	FlagLocal   = "local"
	FlagOffset  = "offset"
	FlagLang    = "lang"
	FlagPort    = "port"

	FlagDescVersion = "Show application version and exit"
	FlagDescDebug   = "Enable debug logging to stdout"
	FlagDescLocal   = "Use the host's local UTC offset instead of UTC"
	FlagDescOffset  = "Use a fixed whole-hour UTC offset (overrides -local)"
	FlagDescLang    = "Language of the info report labels (en, fr)"
	FlagDescPort    = "Port the serve command listens on"

	CmdNow   = "now"
	CmdInfo  = "info"
	CmdICS   = "ics"
	CmdServe = "serve"

	MsgVersionOutput = "%s version %s (%s/%s)\n"
	MsgUsage         = "Usage: go-wtime [flags] [now|info|ics|serve]\n"
)

// -----------------------------------------------------------------------------
// Time Modes
// -----------------------------------------------------------------------------

const (
	ModeUTC   = "utc"
	ModeLocal = "local"
	ModeFixed = "fixed"
)

// -----------------------------------------------------------------------------
// Default Values
// -----------------------------------------------------------------------------

const (
	DefaultMode     = ModeUTC
	DefaultPort     = "18081"
	DefaultRefresh  = 1 * time.Second
	DefaultLanguage = "en"

	// MaxOffsetHours bounds fixed offsets to the range real zones use.
	MaxOffsetHours = 14
)

// SupportedLanguages defines the list of available report languages (ISO 639-1).
var SupportedLanguages = []string{"en", "fr"}

// -----------------------------------------------------------------------------
// Timestamp Format
// -----------------------------------------------------------------------------

const (
	// FormatTimestamp renders year-month-day-hour-minute-second-millis-nanos.
	// Downstream parsers read it by fixed column; the widths are part of the format.
	FormatTimestamp = "%04d-%02d-%02d-%02d-%02d-%02d-%03d-%06d"

	// TimestampLength is the width of a timestamp whose fields are all in range.
	TimestampLength = 30

	// FormatOffset renders a UTC offset as +HH:MM.
	FormatOffset = "%c%02d:%02d"
)

// -----------------------------------------------------------------------------
// Standards: iCalendar
// -----------------------------------------------------------------------------

const (
	ICalVersion = "2.0"
	ICalProdid  = "-//Go WTime//Engine//EN"
	ICalCalName = "WTime"
	ICalMethod  = "PUBLISH"
	ICalScale   = "GREGORIAN"
	ICalDomain  = "gowtime"

	PropUID         = "UID"
	PropSummary     = "SUMMARY"
	PropDescription = "DESCRIPTION"
	PropDTStart     = "DTSTART"
	PropDTStamp     = "DTSTAMP"
	PropVersion     = "VERSION"
	PropProdid      = "PRODID"
	PropXWRCalName  = "X-WR-CALNAME"
	PropCalScale    = "CALSCALE"
	PropMethod      = "METHOD"
	PropXTimestamp  = "X-WTIME-TIMESTAMP"
	PropXISOWeek    = "X-WTIME-ISO-WEEK"
	PropXOffset     = "X-WTIME-UTC-OFFSET"

	FormatUID         = "%s@%s"
	FormatEvtSummary  = "%s, %d %s %d"
	FormatDescription = "ISO week %d"
)

// -----------------------------------------------------------------------------
// Network & Timeouts
// -----------------------------------------------------------------------------

const (
	ShutdownTimeout    = 5 * time.Second
	ServerReadTimeout  = 10 * time.Second
	ServerWriteTimeout = 30 * time.Second
	ServerIdleTimeout  = 60 * time.Second
	RetryAfterSeconds  = "1"
	AllowedMethods     = "GET, HEAD"
	MinPort            = 1
	MaxPort            = 65535
	AddrSeparator      = ":"

	RouteTimestamp = "/"
	RouteICS       = "/ics"
	RouteInfo      = "/info"
)

// -----------------------------------------------------------------------------
// HTTP Headers & MIME Types
// -----------------------------------------------------------------------------

const (
	HeaderContentType     = "Content-Type"
	HeaderCacheControl    = "Cache-Control"
	HeaderETag            = "ETag"
	HeaderLastModified    = "Last-Modified"
	HeaderRetryAfter      = "Retry-After"
	HeaderAllow           = "Allow"
	HeaderXContentType    = "X-Content-Type-Options"
	HeaderServer          = "Server"
	HeaderIfNoneMatch     = "If-None-Match"
	HeaderIfModifiedSince = "If-Modified-Since"

	MimeTextPlain       = "text/plain; charset=utf-8"
	MimeTextCalendar    = "text/calendar; charset=utf-8"
	MimeNoSniff         = "nosniff"
	CacheControlPrivate = "private, no-cache"

	// FormatETag expects a string argument.
	FormatETag = `"%s"`
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrClockRead        = "failed to read clock"
	ErrBeforeEpoch      = "clock reports a time before the Unix epoch"
	ErrInstantOverflow  = "time since the epoch exceeds the 64-bit range"
	ErrUnknownMode      = "configuration error: unsupported time mode"
	ErrUnknownCommand   = "unknown command"
	ErrOffsetRange      = "configuration error: offset must be between -14 and 14 hours"
	ErrRefreshInterval  = "configuration error: refresh interval must be positive"
	ErrLoadSettings     = "failed to load settings"
	ErrServerStartup    = "server startup failed"
	ErrServerShutdown   = "server shutdown failed"
	ErrPortRequired     = "server port is required"
	ErrPortNumber       = "server port must be a number"
	ErrPortRange        = "server port must be between 1 and 65535"
	ErrICalEncode       = "failed to encode iCalendar data"
	ErrRender           = "failed to render content"
	ErrLogFile          = "failed to open log file"
	ErrCacheDir         = "could not determine user cache dir"
	ErrCreateDir        = "could not create app cache dir"
	ErrAppFailed        = "application failed unexpectedly"
	ErrWriteResp        = "failed to write response body"
	ErrLocalesAccess    = "failed to access embedded locales"
	ErrLocaleLoad       = "failed to load locale file"
	ErrLanguageTag      = "invalid language tag"

	ErrUnsupportedLanguage = "configuration error: unsupported report language"
	ErrOffsetResolution = "could not resolve local UTC offset, using UTC"
)

// -----------------------------------------------------------------------------
// HTTP Server Responses
// -----------------------------------------------------------------------------

const (
	HTTPMsgInitializing = "Clock initializing, please try again shortly."
	HTTPMsgMethodNotAll = "Method Not Allowed"
	HTTPMsgNotFound     = "Not Found"
)

// -----------------------------------------------------------------------------
// Log Messages
// -----------------------------------------------------------------------------

const (
	MsgAppStarting   = "Application starting"
	MsgAppStop       = "Application stopped"
	MsgServerListen  = "Time server listening"
	MsgServerStop    = "Time server stopping"
	MsgCacheUpdated  = "Served content updated"
	MsgRefreshStart  = "Refresh worker started"
	MsgRefreshStop   = "Refresh worker stopped"
	MsgSnapshot      = "Snapshot taken"
	MsgSettings      = "Settings loaded"
	MsgLocaleSkip    = "Skipping non-locale file"
	MsgLocaleBadName = "Locale file has an empty language code"
	MsgLocaleLoaded  = "Locale loaded successfully"
	MsgTransMissing  = "Missing translation key"
	MsgLogWarning    = "Warning: %s at %s: %v\n"
)

// -----------------------------------------------------------------------------
// Translation Keys (I18n)
// -----------------------------------------------------------------------------

const (
	TKeyTimestamp = "report_timestamp"
	TKeyDate      = "report_date"
	TKeyTime      = "report_time"
	TKeyWeekday   = "report_weekday"
	TKeyMonth     = "report_month"
	TKeyISOWeek   = "report_iso_week"
	TKeyDayOfYear = "report_day_of_year"
	TKeyLeapYear  = "report_leap_year"
	TKeyOffset    = "report_utc_offset"
	TKeyUnixSec   = "report_unix_seconds"
	TKeyUnixMilli = "report_unix_millis"
	TKeyUnixNano  = "report_unix_nanos"
	TKeyYes       = "report_yes"
	TKeyNo        = "report_no"
)

// -----------------------------------------------------------------------------
// Structured Logging Keys (slog)
// -----------------------------------------------------------------------------

const (
	LogKeyComponent = "component"
	LogKeyError     = "error"
	LogKeyFile      = "file"
	LogKeyLang      = "lang"
	LogKeyKey       = "key"
	LogKeyPort      = "port"
	LogKeyMode      = "mode"
	LogKeyInterval  = "interval"
	LogKeyOffset    = "offset_hours"
	LogKeySeconds   = "offset_seconds"
	LogKeyZone      = "zone"
	LogKeyCommand   = "command"
	LogKeySizeBytes = "size_bytes"
	LogKeyETag      = "etag"
	LogKeyRoute     = "route"
	LogKeyTimestamp = "timestamp"

	// Startup Info Keys
	LogKeyBuild   = "build"
	LogKeyApp     = "app"
	LogKeyVersion = "version"
	LogKeyGoVer   = "go_version"
	LogKeyEnv     = "env"
	LogKeyOS      = "os"
	LogKeyArch    = "arch"
	LogKeyPID     = "pid"
)

// -----------------------------------------------------------------------------
// Log Components
// -----------------------------------------------------------------------------

const (
	CompEngine  = "engine"
	CompOffset  = "offset"
	CompServer  = "server"
	CompWorker  = "worker"
	CompMain    = "main"
	CompI18n    = "i18n"
	CompSetting = "settings"
)
