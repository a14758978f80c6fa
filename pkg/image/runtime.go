package image

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

// cliFetcher shells out to a container runtime CLI to pull a catalog
// image and copy its configuration directory out of a stopped
// container.
type cliFetcher struct {
	bin     string
	workDir string
}

// NewCLIFetcher detects an available container runtime and returns a
// Fetcher extracting catalogs under workDir. Podman is tried first,
// then docker.
func NewCLIFetcher(workDir string) (Fetcher, error) {
	for _, bin := range []string{"podman", "docker"} {
		if err := exec.Command(bin, "version").Run(); err == nil {
			return &cliFetcher{bin: bin, workDir: workDir}, nil
		}
	}
	return nil, ErrNoRuntimeAvailable
}

// FetchCatalogFiles pulls the image, reads the catalog config-dir
// label, and copies that directory into a local tree.
func (f *cliFetcher) FetchCatalogFiles(ctx context.Context, imageRef string) (string, error) {
	logrus.Infof("pulling catalog image %s", imageRef)
	if out, err := exec.CommandContext(ctx, f.bin, "pull", imageRef).CombinedOutput(); err != nil {
		return "", fmt.Errorf("pull %s: %v: %s", imageRef, err, strings.TrimSpace(string(out)))
	}

	configDir, err := f.configDirLabel(ctx, imageRef)
	if err != nil {
		return "", err
	}

	containerID, err := f.createContainer(ctx, imageRef)
	if err != nil {
		return "", err
	}
	defer f.removeContainer(containerID)

	spec := ParseRef(imageRef)
	dest := filepath.Join(f.workDir, strings.ReplaceAll(spec.Name, "/", "-")+"-"+spec.Version())
	cpArg := fmt.Sprintf("%s:%s/.", containerID, configDir)
	if out, err := exec.CommandContext(ctx, f.bin, "cp", cpArg, dest).CombinedOutput(); err != nil {
		return "", fmt.Errorf("copy catalog files from %s: %v: %s", imageRef, err, strings.TrimSpace(string(out)))
	}
	return dest, nil
}

func (f *cliFetcher) configDirLabel(ctx context.Context, imageRef string) (string, error) {
	out, err := exec.CommandContext(ctx, f.bin, "inspect", "--type", "image", imageRef).Output()
	if err != nil {
		return "", fmt.Errorf("inspect %s: %w", imageRef, err)
	}

	var inspected []struct {
		Config struct {
			Labels map[string]string `json:"Labels"`
		} `json:"Config"`
	}
	if err := json.Unmarshal(out, &inspected); err != nil {
		return "", fmt.Errorf("parse inspect output for %s: %w", imageRef, err)
	}
	if len(inspected) == 0 {
		return "", fmt.Errorf("image %s not found after pull", imageRef)
	}

	configDir := inspected[0].Config.Labels[ConfigDirLabel]
	if configDir == "" {
		return "", fmt.Errorf("image %s is not a file-based catalog: label %q missing", imageRef, ConfigDirLabel)
	}
	return configDir, nil
}

func (f *cliFetcher) createContainer(ctx context.Context, imageRef string) (string, error) {
	out, err := exec.CommandContext(ctx, f.bin, "create", imageRef).Output()
	if err != nil {
		return "", fmt.Errorf("create container for %s: %w", imageRef, err)
	}
	return strings.TrimSpace(string(out)), nil
}

func (f *cliFetcher) removeContainer(containerID string) {
	if out, err := exec.Command(f.bin, "rm", "-f", containerID).CombinedOutput(); err != nil {
		logrus.Warnf("remove container %s: %v: %s", containerID, err, strings.TrimSpace(string(out)))
	}
}
