package common

// AccessTokenHeaderName is the HTTP header that carries the service token
// on outbound store requests.
const AccessTokenHeaderName = "X-Access-Token"
