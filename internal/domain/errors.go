package domain

import "errors"

// ErrFetch is returned when a row feed cannot be reached (transport or auth
// failure). Handlers should map this to HTTP 502; the membership service may
// instead substitute the documented sample dataset so the dashboard stays
// populated in a clearly-demo state.
var ErrFetch = errors.New("feed fetch failed")

// ErrWrite is returned when persisting annotation rows fails. Saves must
// fail loudly with this error; a lost write is never silently merged into
// the cached view as if it had succeeded.
var ErrWrite = errors.New("annotation write failed")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. saving an annotation without a unique ID).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")
