package config // package config loads application configuration from environment variables

import (
    "log"      // log is used to report configuration errors and halt execution
    "os"       // os provides access to environment variables
    "strconv"  // strconv converts strings to other types
    "strings"  // strings splits list-valued variables
    "time"     // time parses duration-valued variables
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  The types reflect how the values are used in
// the application: strings for identifiers, ints and durations for tuning.
type Config struct {
    Env             string        // application environment (e.g. "dev", "prod")
    Port            string        // HTTP port to listen on
    DBUser          string        // database username
    DBPass          string        // database password (optional)
    DBHost          string        // database host address
    DBPort          string        // database port number
    DBName          string        // database name
    SyncMaxRetries  int           // attempts allowed per store write before giving up
    ResyncDebounce  time.Duration // damping window for change-event re-syncs
    FallbackURL     string        // out-of-band assignment gateway (optional)
    FallbackAPIKey  string        // bearer token for the fallback gateway (optional)
    NoTicketGuides  []string      // guide names exempt from attraction tickets
}

// Load reads configuration values from environment variables and returns a
// Config.  Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.
func Load() Config {
    return Config{
        Env:            must("APP_ENV"),             // environment (dev/test/prod)
        Port:           must("APP_PORT"),            // port to bind the HTTP server
        DBUser:         must("DB_USER"),             // database user
        DBPass:         os.Getenv("DB_PASS"),        // database password (empty allowed)
        DBHost:         must("DB_HOST"),             // database host
        DBPort:         must("DB_PORT"),             // database port
        DBName:         must("DB_NAME"),             // database name
        SyncMaxRetries: intOr("SYNC_MAX_RETRIES", 5),           // retry budget for sync writes
        ResyncDebounce: durOr("RESYNC_DEBOUNCE", 2*time.Second), // event damping window
        FallbackURL:    os.Getenv("SYNC_FALLBACK_URL"),          // empty disables the fallback
        FallbackAPIKey: os.Getenv("SYNC_FALLBACK_API_KEY"),
        NoTicketGuides: listOr("NO_TICKET_GUIDES", "Sophie Miller"), // comma-separated names
    }
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
    v, ok := os.LookupEnv(key)
    if !ok || v == "" {
        log.Fatalf("missing required env var: %s", key)
    }
    return v
}

// intOr retrieves an optional integer variable, falling back to def when
// unset.  A malformed value is still fatal: silently running with a wrong
// retry budget is worse than failing at startup.
func intOr(key string, def int) int {
    s, ok := os.LookupEnv(key)
    if !ok || s == "" {
        return def
    }
    n, err := strconv.Atoi(s)
    if err != nil {
        log.Fatalf("invalid int for %s: %q", key, s)
    }
    return n
}

// durOr retrieves an optional duration variable ("500ms", "2s", ...).
func durOr(key string, def time.Duration) time.Duration {
    s, ok := os.LookupEnv(key)
    if !ok || s == "" {
        return def
    }
    d, err := time.ParseDuration(s)
    if err != nil {
        log.Fatalf("invalid duration for %s: %q", key, s)
    }
    return d
}

// listOr retrieves an optional comma-separated list variable, trimming
// whitespace around each element and dropping empties.
func listOr(key, def string) []string {
    s, ok := os.LookupEnv(key)
    if !ok || s == "" {
        s = def
    }
    var out []string
    for _, p := range strings.Split(s, ",") {
        if p = strings.TrimSpace(p); p != "" {
            out = append(out, p)
        }
    }
    return out
}
