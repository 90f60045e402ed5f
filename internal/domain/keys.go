package domain

// KeyPrefix is the namespace prefix for every key fuzzdex writes.
const KeyPrefix = "fuzzdex:"
