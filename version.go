package gettranslated

// Version is the SDK release identifier sent with every request.
// The leading letter distinguishes the Go port from the other SDK
// implementations reporting into the same backend.
const Version = "G1.0.0"
