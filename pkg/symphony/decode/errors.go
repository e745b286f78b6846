package decode

import "github.com/sdsymphony/hist2json/pkg/histerrors"

// errMalformedHeader is returned by Decode when a line's header does not
// parse into a timestamp at all -- the line must be skipped entirely,
// per §4.8.
var errMalformedHeader = histerrors.New(histerrors.ErrorTypeParse, "malformed history line header")
