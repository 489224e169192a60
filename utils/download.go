package utils

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
)

// DownloadImage downloads the image from the internet and saves it into a temporary file.
func DownloadImage(uri string) (*os.File, error) {
	res, err := http.Get(uri)
	if err != nil {
		return nil, fmt.Errorf("unable to download image file from URI %s: %w", uri, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unable to download image file from URI %s: status %v", uri, res.Status)
	}

	tmpfile, err := os.CreateTemp("", "pigment")
	if err != nil {
		return nil, fmt.Errorf("unable to create temporary file: %w", err)
	}

	if _, err = io.Copy(tmpfile, res.Body); err != nil {
		return tmpfile, fmt.Errorf("unable to copy the source URI into the destination file: %w", err)
	}

	ctype, err := DetectContentType(tmpfile.Name())
	if err != nil {
		return tmpfile, err
	}
	if ctype == "application/octet-stream" {
		return tmpfile, fmt.Errorf("the downloaded file is not a valid image type")
	}
	if _, err := tmpfile.Seek(0, io.SeekStart); err != nil {
		return tmpfile, err
	}

	return tmpfile, nil
}

// IsValidUrl tests a string to determine if it is a well-structured url or not.
func IsValidUrl(uri string) bool {
	if _, err := url.ParseRequestURI(uri); err != nil {
		return false
	}
	u, err := url.Parse(uri)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return false
	}
	return true
}
