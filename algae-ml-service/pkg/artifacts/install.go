/*******************************************************************************
* Contributors: BMC Helix, Inc.
*
* (c) Copyright 2020-2025 BMC Helix, Inc.

* SPDX-License-Identifier: Apache-2.0
*******************************************************************************/

package artifacts

import (
	"io"
	"os"
	"path/filepath"

	"github.com/edgexfoundry/go-mod-core-contracts/v3/clients/logger"
	"github.com/pkg/errors"
)

// Install copies the artifact set named by the source manifest, and the manifest itself
// when present, from src into dst. Missing files are skipped with a warning;
// it fails only when nothing could be copied.
func Install(src, dst string, lc logger.LoggingClient) (int, error) {
	manifest, err := ReadManifest(src)
	if err != nil {
		return 0, err
	}
	if err := os.MkdirAll(dst, 0o755); err != nil {
		return 0, errors.Wrapf(err, "failed to create model directory %s", dst)
	}

	files := manifest.Files()
	if _, err := os.Stat(filepath.Join(src, ManifestFile)); err == nil {
		files = append(files, ManifestFile)
	}

	copied := 0
	for _, name := range files {
		from := filepath.Join(src, name)
		if _, err := os.Stat(from); err != nil {
			lc.Warnf("Warning: %s not found in %s", name, src)
			continue
		}
		if err := copyFile(from, filepath.Join(dst, name)); err != nil {
			return copied, err
		}
		lc.Infof("Copied %s to %s", name, dst)
		copied++
	}
	if copied == 0 {
		return 0, errors.Errorf("no model artifacts found in %s", src)
	}
	return copied, nil
}

func copyFile(from, to string) error {
	in, err := os.Open(from)
	if err != nil {
		return errors.Wrapf(err, "failed to open %s", from)
	}
	defer in.Close()

	out, err := os.Create(to)
	if err != nil {
		return errors.Wrapf(err, "failed to create %s", to)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return errors.Wrapf(err, "failed to copy %s", from)
	}
	return out.Close()
}
