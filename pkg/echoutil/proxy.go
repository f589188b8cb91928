package echoutil

import (
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// Proxy forwards the request held by c to url and copies the
// response back, streaming the bodies both ways.
func Proxy(cp *echo.Context, url string) error {
	c := *cp

	req, err := http.NewRequestWithContext(
		c.Request().Context(), c.Request().Method, url, c.Request().Body,
	)
	if err != nil {
		c.String(http.StatusInternalServerError, err.Error())
		return err
	}
	CopyHeader(&req.Header, &c.Request().Header)

	client := &http.Client{CheckRedirect: nil}
	resp, err := client.Do(req)
	if err != nil {
		c.String(http.StatusBadGateway, err.Error())
		return err
	}
	defer resp.Body.Close()

	return CopyResponse(cp, resp)
}

func CopyHeader(dest *http.Header, src *http.Header, except ...string) {
	exc := map[string]interface{}{}
	for _, x := range except {
		exc[strings.ToLower(x)] = nil
	}

	for k, vs := range *src {
		if _, ok := exc[strings.ToLower(k)]; ok {
			// this header marked not to be copied
			continue
		}
		for _, v := range vs {
			dest.Add(k, v)
		}
	}
}

func CopyResponse(cp *echo.Context, resp *http.Response) error {
	c := *cp

	header := c.Response().Header()
	for k, vs := range resp.Header {
		for _, v := range vs {
			header.Add(k, v)
		}
	}
	c.Response().WriteHeader(resp.StatusCode)

	_, err := io.Copy(c.Response(), resp.Body)
	return err
}
