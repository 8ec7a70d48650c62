package universemachine

import (
	"archive/tar"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// ArchiveURL is the UniverseMachine DR1 release tarball.
const ArchiveURL = "https://halos.as.arizona.edu/UniverseMachine/DR1/umachine-dr1.tar.gz"

// archivePrefix selects the stellar mass - halo mass tables; the rest of
// the release (catalogs, lightcones) is far too large to extract.
const archivePrefix = "umachine-dr1/data/smhm/"

const downloadAttempts = 4

// Download fetches the DR1 release and extracts the smhm tables under
// destDir, returning the extracted smhm directory. The download is
// skipped when that directory already exists. Transient HTTP failures
// are retried with exponential backoff.
func Download(ctx context.Context, destDir string) (string, error) {
	smhmDir := filepath.Join(destDir, filepath.FromSlash(archivePrefix))
	if _, err := os.Stat(smhmDir); err == nil {
		return smhmDir, nil
	}

	operation := func() error {
		return fetchAndExtract(ctx, destDir)
	}
	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), downloadAttempts),
		ctx,
	)
	if err := backoff.Retry(operation, policy); err != nil {
		return "", fmt.Errorf("download %s: %w", ArchiveURL, err)
	}
	return smhmDir, nil
}

func fetchAndExtract(ctx context.Context, destDir string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ArchiveURL, nil)
	if err != nil {
		return backoff.Permanent(err)
	}

	client := &http.Client{Timeout: 30 * time.Minute}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return backoff.Permanent(fmt.Errorf("server returned %s", resp.Status))
	default:
		return fmt.Errorf("server returned %s", resp.Status)
	}

	return extract(resp.Body, destDir)
}

// extract streams the gzipped tar archive, writing only the smhm table
// files under destDir.
func extract(r io.Reader, destDir string) error {
	gz, err := gzip.NewReader(r)
	if err != nil {
		return err
	}
	defer gz.Close()

	tr := tar.NewReader(gz)
	for {
		header, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if !strings.HasPrefix(header.Name, archivePrefix) {
			continue
		}

		rel := filepath.FromSlash(header.Name)
		if strings.Contains(header.Name, "..") {
			return fmt.Errorf("archive member escapes destination: %s", header.Name)
		}
		target := filepath.Join(destDir, rel)

		switch header.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0o755); err != nil {
				return err
			}
		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
				return err
			}
			if err := writeMember(target, tr); err != nil {
				return err
			}
		}
	}
}

func writeMember(target string, r io.Reader) error {
	f, err := os.Create(target)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
