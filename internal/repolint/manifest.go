package repolint

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/go-containerregistry/pkg/name"
	"gopkg.in/yaml.v3"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/client-go/kubernetes/scheme"
)

// top-level keys every manifest starts with, in this order.
var manifestKeyOrder = []string{"apiVersion", "kind", "metadata"}

// LintManifestFile lints one kubernetes manifest file.
func LintManifestFile(path string) ([]Finding, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return LintManifest(path, content)
}

// LintManifest checks the manifest conventions:
//
//   - no comments anywhere (manifests are generated-or-generatable files;
//     prose belongs to the service README),
//   - apiVersion, kind, metadata come first, in this order,
//   - documents of kinds known to the kubernetes scheme must decode,
//   - container image references are explicit (tag or digest, not latest).
//
// The content may hold multiple YAML documents.
func LintManifest(path string, content []byte) ([]Finding, error) {
	found := []Finding{}

	dec := yaml.NewDecoder(strings.NewReader(string(content)))
	for {
		var doc yaml.Node
		if err := dec.Decode(&doc); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("%s is not yaml: %w", path, err)
		}
		if len(doc.Content) == 0 {
			continue
		}

		root := doc.Content[0]

		found = append(found, findComments(path, &doc)...)
		found = append(found, checkFieldOrder(path, root)...)
		found = append(found, checkImageRefs(path, root)...)

		if f, err := checkDecodable(path, root); err != nil {
			return nil, err
		} else {
			found = append(found, f...)
		}
	}

	SortFindings(found)
	return found, nil
}

func findComments(path string, node *yaml.Node) []Finding {
	found := []Finding{}

	if node.HeadComment != "" || node.LineComment != "" || node.FootComment != "" {
		found = append(found, Finding{
			Path: path, Line: node.Line, Rule: RuleNoComments,
			Message: "manifests should not contain comments",
		})
	}
	for _, child := range node.Content {
		found = append(found, findComments(path, child)...)
	}
	return found
}

func checkFieldOrder(path string, root *yaml.Node) []Finding {
	if root.Kind != yaml.MappingNode {
		return []Finding{{
			Path: path, Line: root.Line, Rule: RuleFieldOrder,
			Message: "manifest document should be a mapping",
		}}
	}

	keys := []string{}
	for i := 0; i+1 < len(root.Content); i += 2 {
		keys = append(keys, root.Content[i].Value)
	}

	for nth, expected := range manifestKeyOrder {
		if len(keys) <= nth || keys[nth] != expected {
			return []Finding{{
				Path: path, Line: root.Line, Rule: RuleFieldOrder,
				Message: fmt.Sprintf(
					"top-level fields should start with %s",
					strings.Join(manifestKeyOrder, ", "),
				),
			}}
		}
	}
	return nil
}

// checkImageRefs finds every "image:" scalar in the document and
// requires an explicit tag or digest.
func checkImageRefs(path string, node *yaml.Node) []Finding {
	found := []Finding{}

	if node.Kind == yaml.MappingNode {
		for i := 0; i+1 < len(node.Content); i += 2 {
			key, value := node.Content[i], node.Content[i+1]
			if key.Value == "image" && value.Kind == yaml.ScalarNode {
				if f, ok := checkImageRef(path, value); !ok {
					found = append(found, f)
				}
			}
		}
	}
	for _, child := range node.Content {
		found = append(found, checkImageRefs(path, child)...)
	}
	return found
}

func checkImageRef(path string, node *yaml.Node) (Finding, bool) {
	ref, err := name.ParseReference(node.Value, name.StrictValidation)
	if err != nil {
		return Finding{
			Path: path, Line: node.Line, Rule: RuleImageRef,
			Message: fmt.Sprintf(
				"image %q should be pinned with an explicit tag or digest", node.Value,
			),
		}, false
	}
	if tag, ok := ref.(name.Tag); ok && tag.TagStr() == "latest" {
		return Finding{
			Path: path, Line: node.Line, Rule: RuleImageRef,
			Message: fmt.Sprintf("image %q should not use the latest tag", node.Value),
		}, false
	}
	return Finding{}, true
}

// checkDecodable re-encodes the document as JSON and feeds it to the
// kubernetes scheme. Kinds the scheme does not know (CRDs, kustomize
// files) are skipped; known kinds must round-trip.
func checkDecodable(path string, root *yaml.Node) ([]Finding, error) {
	var plain map[string]any
	if err := root.Decode(&plain); err != nil {
		return nil, err
	}

	// non-kubernetes yaml (no apiVersion/kind) is none of our business here.
	if _, ok := plain["apiVersion"].(string); !ok {
		return nil, nil
	}
	if _, ok := plain["kind"].(string); !ok {
		return nil, nil
	}

	b, err := json.Marshal(plain)
	if err != nil {
		return nil, err
	}

	if _, _, err := scheme.Codecs.UniversalDeserializer().Decode(b, nil, nil); err != nil {
		if runtime.IsNotRegisteredError(err) {
			return nil, nil
		}
		return []Finding{{
			Path: path, Line: root.Line, Rule: RuleDecodable,
			Message: fmt.Sprintf("manifest does not decode: %s", err),
		}}, nil
	}
	return nil, nil
}
