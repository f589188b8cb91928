package handlers

import (
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/mdaops/axon/pkg/echoutil"
)

// GetObjectHandler streams a file from the seaweedfs filer.
//
// The gateway adds nothing here. It only spares browser clients the
// in-cluster DNS name of the filer.
func GetObjectHandler(filerBaseURL string) echo.HandlerFunc {
	return func(c echo.Context) error {
		// the AddTrailingSlash middleware appends a slash, which the
		// filer would read as a directory listing.
		url := filerBaseURL + "/" + strings.TrimSuffix(c.Param("*"), "/")
		if q := c.Request().URL.RawQuery; q != "" {
			url += "?" + q
		}
		return echoutil.Proxy(&c, url)
	}
}
