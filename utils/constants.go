package utils

import "time"

// StatsCachePrefix is the prefix used for Redis calendar stats cache keys.
const StatsCachePrefix = "calstats:"

// StatsCacheTTL is the time-to-live for calendar stats cache entries.
const StatsCacheTTL = 5 * time.Minute

// OAuthStatePrefix is the prefix for pending OAuth consent state nonces.
const OAuthStatePrefix = "oauthstate:"

// OAuthStateTTL bounds how long a consent round-trip may take.
const OAuthStateTTL = 10 * time.Minute
