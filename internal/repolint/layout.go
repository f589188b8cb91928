package repolint

import (
	"fmt"
	"os"
	"path/filepath"
)

const kustomizationFile = "kustomization.yaml"

// LintLayout checks the deployment directory convention:
//
//	<root>/
//	   base/
//	      kustomization.yaml
//	      ...
//	   overlays/
//	      <env>/
//	         kustomization.yaml
//	         ...
//
// base/ and overlays/ are required, each overlay names an environment,
// and nothing else lives beside them.
func LintLayout(root string) ([]Finding, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, err
	}

	found := []Finding{}

	var hasBase, hasOverlays bool
	for _, e := range entries {
		switch e.Name() {
		case "base":
			hasBase = e.IsDir()
		case "overlays":
			hasOverlays = e.IsDir()
		default:
			found = append(found, Finding{
				Path: filepath.Join(root, e.Name()), Rule: RuleLayoutStray,
				Message: "only base/ and overlays/ belong in a deployment root",
			})
		}
	}

	if !hasBase {
		found = append(found, Finding{
			Path: root, Rule: RuleLayoutBase,
			Message: "deployment root should have base/",
		})
	} else if _, err := os.Stat(filepath.Join(root, "base", kustomizationFile)); err != nil {
		found = append(found, Finding{
			Path: filepath.Join(root, "base"), Rule: RuleLayoutBase,
			Message: fmt.Sprintf("base/ should have %s", kustomizationFile),
		})
	}

	if !hasOverlays {
		found = append(found, Finding{
			Path: root, Rule: RuleLayoutOverlays,
			Message: "deployment root should have overlays/",
		})
	} else {
		overlays, err := os.ReadDir(filepath.Join(root, "overlays"))
		if err != nil {
			return nil, err
		}
		if len(overlays) == 0 {
			found = append(found, Finding{
				Path: filepath.Join(root, "overlays"), Rule: RuleLayoutOverlays,
				Message: "overlays/ should have at least one environment",
			})
		}
		for _, env := range overlays {
			if !env.IsDir() {
				found = append(found, Finding{
					Path: filepath.Join(root, "overlays", env.Name()), Rule: RuleLayoutOverlays,
					Message: "entries of overlays/ should be environment directories",
				})
				continue
			}
			if _, err := os.Stat(filepath.Join(root, "overlays", env.Name(), kustomizationFile)); err != nil {
				found = append(found, Finding{
					Path: filepath.Join(root, "overlays", env.Name()), Rule: RuleLayoutOverlays,
					Message: fmt.Sprintf("overlay should have %s", kustomizationFile),
				})
			}
		}
	}

	SortFindings(found)
	return found, nil
}

// LintManifestTree lints every .yaml file under base/ and overlays/
// of a deployment root, layout first.
func LintManifestTree(root string) ([]Finding, error) {
	found, err := LintLayout(root)
	if err != nil {
		return nil, err
	}

	err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if filepath.Ext(path) != ".yaml" && filepath.Ext(path) != ".yml" {
			return nil
		}
		// kustomization files are kustomize config, not manifests.
		if d.Name() == kustomizationFile || d.Name() == "kustomization.yml" {
			return nil
		}

		f, err := LintManifestFile(path)
		if err != nil {
			return err
		}
		found = append(found, f...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	SortFindings(found)
	return found, nil
}
