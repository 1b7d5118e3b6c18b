package installer

import (
	"fmt"
	"io"
	"net/http"
	"os"

	"devsetup/internal/logger"
)

// downloadFile downloads the content located at the specified URL and saves it to
// the destination path. It returns an error if the download or file write fails.
func downloadFile(url, destPath string) error {
	// Make an HTTP GET request to the given URL
	resp, err := http.Get(url)
	if err != nil {
		return fmt.Errorf("failed to GET %s: %w", url, err)
	}
	// Ensure the response body stream is closed when the function returns,
	// avoiding resource leaks.
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			logger.Error("[ERROR] Failed to close response body: %s\n", cerr)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetch of %s failed: HTTP status %d", url, resp.StatusCode)
	}

	// Create or truncate the file at destPath to write the downloaded content
	out, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", destPath, err)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil {
			logger.Error("[ERROR] Failed to close destination file: %s\n", cerr)
		}
	}()

	// Copy the entire response body (downloaded data) into the destination file
	if _, err := io.Copy(out, resp.Body); err != nil {
		return fmt.Errorf("failed to write response to file: %w", err)
	}

	logger.Debug("[DEBUG] Downloaded %s to %s\n", url, destPath)
	return nil
}
