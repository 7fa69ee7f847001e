package validation

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

var errTrailingData = errors.New("unexpected data after top-level JSON value")

// StrictJSONSerializer is echo's JSON serializer with one difference:
// a request body must hold exactly one JSON value. echo's default decoder
// stops after the first value and silently ignores the rest.
type StrictJSONSerializer struct {
	echo.DefaultJSONSerializer
}

// Deserialize decodes the request body into i and rejects trailing data.
//
// Failures are 400s carrying the decoder error as internal cause, so a
// body cut off by BodyLimit is still recognisable by bindError.
func (s StrictJSONSerializer) Deserialize(c echo.Context, i interface{}) error {
	dec := json.NewDecoder(c.Request().Body)

	if err := dec.Decode(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, MessageInvalidBody).SetInternal(err)
	}

	if _, err := dec.Token(); err != io.EOF {
		if err == nil {
			err = errTrailingData
		}
		return echo.NewHTTPError(http.StatusBadRequest, MessageInvalidBody).SetInternal(err)
	}

	return nil
}
