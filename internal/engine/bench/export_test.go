package bench

// WithClock exposes the clock override for tests.
var WithClock = withClock

// Autorange exposes the run-count sequence for tests.
var Autorange = autorange
