package netpad

// Version is the SDK version, reported in the User-Agent header.
const Version = "0.1.0"

const userAgent = "netpad-client-go/" + Version
