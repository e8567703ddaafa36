package config

import (
	"fmt"
	"os"
	"strings"

	kdl "github.com/sblinch/kdl-go"
	"github.com/sblinch/kdl-go/document"
)

// Load reads a KDL config file at path. A missing file is not an error: the
// caller gets built-in defaults, and any keys absent from the document also
// fall back to defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	return parseKDL(string(content))
}

func parseKDL(content string) (*Config, error) {
	cfg := Default()

	doc, err := kdl.Parse(strings.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	for _, n := range doc.Nodes {
		if nodeName(n) != "unused_code" {
			continue
		}
		for _, cn := range n.Children {
			switch nodeName(cn) {
			case "include":
				cfg.Include = collectStringArgs(cn)
			case "exclude":
				cfg.Exclude = collectStringArgs(cn)
			case "rules":
				parseRules(cfg, cn)
			case "public_api":
				parsePublicAPI(cfg, cn)
			case "monorepo":
				parseMonorepo(cfg, cn)
			}
		}
	}

	return cfg, nil
}

func parseRules(cfg *Config, n *document.Node) {
	for _, rn := range n.Children {
		rule := ruleFor(cfg, nodeName(rn))
		if rule == nil {
			continue
		}
		for _, fn := range rn.Children {
			switch nodeName(fn) {
			case "enabled":
				if b, ok := firstBoolArg(fn); ok {
					rule.Enabled = b
				}
			case "exclude_patterns":
				rule.ExcludePatterns = collectStringArgs(fn)
			case "exclude_annotations":
				rule.ExcludeAnnotations = collectStringArgs(fn)
			case "exclude_overrides":
				if b, ok := firstBoolArg(fn); ok {
					rule.ExcludeOverrides = b
				}
			case "exclude_public":
				if b, ok := firstBoolArg(fn); ok {
					rule.ExcludePublic = b
				}
			case "exclude_private":
				if b, ok := firstBoolArg(fn); ok {
					rule.ExcludePrivate = b
				}
			case "exclude_static":
				if b, ok := firstBoolArg(fn); ok {
					rule.ExcludeStatic = b
				}
			}
		}
	}
}

func ruleFor(cfg *Config, name string) *Rule {
	switch name {
	case "unused_classes":
		return &cfg.Rules.UnusedClasses
	case "unused_functions":
		return &cfg.Rules.UnusedFunctions
	case "unused_parameters":
		return &cfg.Rules.UnusedParameters
	case "unused_imports":
		return &cfg.Rules.UnusedImports
	case "unused_members":
		return &cfg.Rules.UnusedMembers
	default:
		return nil
	}
}

func parsePublicAPI(cfg *Config, n *document.Node) {
	for _, cn := range n.Children {
		switch nodeName(cn) {
		case "consider_exports_as_used":
			if b, ok := firstBoolArg(cn); ok {
				cfg.PublicAPI.ConsiderExportsAsUsed = b
			}
		case "entry_points":
			cfg.PublicAPI.EntryPoints = collectStringArgs(cn)
		}
	}
}

func parseMonorepo(cfg *Config, n *document.Node) {
	for _, cn := range n.Children {
		switch nodeName(cn) {
		case "enabled":
			if b, ok := firstBoolArg(cn); ok {
				cfg.Monorepo.Enabled = b
			}
		case "cross_package_analysis":
			if b, ok := firstBoolArg(cn); ok {
				cfg.Monorepo.CrossPackageAnalysis = b
			}
		case "exclude_packages":
			cfg.Monorepo.ExcludePackages = collectStringArgs(cn)
		}
	}
}

// Helper functions over the kdl-go document model, same idiom as the
// teacher's propagation-config KDL reader.
func nodeName(n *document.Node) string {
	if n == nil || n.Name == nil {
		return ""
	}
	return n.Name.NodeNameString()
}

func firstStringArg(n *document.Node) (string, bool) {
	if len(n.Arguments) == 0 {
		return "", false
	}
	if s, ok := n.Arguments[0].Value.(string); ok {
		return s, true
	}
	return "", false
}

func firstBoolArg(n *document.Node) (bool, bool) {
	if len(n.Arguments) == 0 {
		return false, false
	}
	if b, ok := n.Arguments[0].Value.(bool); ok {
		return b, true
	}
	return false, false
}

func collectStringArgs(n *document.Node) []string {
	if n == nil {
		return nil
	}
	out := make([]string, 0, len(n.Arguments))
	for _, a := range n.Arguments {
		if s, ok := a.Value.(string); ok {
			out = append(out, s)
		}
	}
	if len(out) == 0 && len(n.Children) > 0 {
		out = make([]string, 0, len(n.Children))
		for _, child := range n.Children {
			if s, ok := firstStringArg(child); ok {
				out = append(out, s)
			} else if child.Name != nil {
				if s, ok := child.Name.Value.(string); ok {
					out = append(out, s)
				}
			}
		}
	}
	return out
}
