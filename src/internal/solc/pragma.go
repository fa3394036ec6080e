package solc

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/VectorBits/solo/src/internal/parser"
)

var versionRe = regexp.MustCompile(`\d+\.\d+(?:\.\d+)?`)

// Constraints 收集所有 pragma solidity 声明中的版本约束（去掉 "solidity" 前缀）
func Constraints(decls []parser.Declaration) []string {
	var out []string
	for _, d := range decls {
		if d.Type != parser.DeclPragma {
			continue
		}
		rest, ok := strings.CutPrefix(d.Content, "solidity ")
		if !ok {
			continue
		}
		if rest = strings.TrimSpace(rest); rest != "" {
			out = append(out, rest)
		}
	}
	return out
}

// ExtractPragmaVersion 返回 pragma 中出现的最高版本号，没有则返回空串
func ExtractPragmaVersion(decls []parser.Declaration) string {
	var versions []*semver.Version
	for _, c := range Constraints(decls) {
		for _, raw := range versionRe.FindAllString(c, -1) {
			v, err := semver.NewVersion(raw)
			if err != nil {
				continue
			}
			versions = append(versions, v)
		}
	}
	if len(versions) == 0 {
		return ""
	}
	sort.Sort(sort.Reverse(semver.Collection(versions)))
	return versions[0].String()
}

// toSemver rewrites a Solidity constraint into Masterminds syntax: AND terms
// are comma separated and a bare operator is glued to its version
// (">= 0.4.22 <0.9.0" -> ">=0.4.22, <0.9.0").
func toSemver(constraint string) string {
	var terms []string
	pending := ""
	for _, f := range strings.Fields(constraint) {
		if f == "||" {
			if pending != "" {
				terms = append(terms, pending)
				pending = ""
			}
			terms = append(terms, f)
			continue
		}
		if strings.Trim(f, "^~<>=") == "" {
			pending += f
			continue
		}
		terms = append(terms, pending+f)
		pending = ""
	}

	var sb strings.Builder
	for i, t := range terms {
		switch {
		case t == "||":
			sb.WriteString(" || ")
		case i > 0 && terms[i-1] != "||":
			sb.WriteString(", ")
			sb.WriteString(t)
		default:
			sb.WriteString(t)
		}
	}
	return sb.String()
}

// Satisfies 检查编译器版本是否满足单条 pragma 约束
func Satisfies(constraint, version string) (bool, error) {
	c, err := semver.NewConstraint(toSemver(constraint))
	if err != nil {
		return false, fmt.Errorf("invalid pragma constraint %q: %w", constraint, err)
	}
	v, err := semver.NewVersion(strings.TrimPrefix(strings.TrimSpace(version), "v"))
	if err != nil {
		return false, fmt.Errorf("invalid compiler version %q: %w", version, err)
	}
	return c.Check(v), nil
}

// Check 验证 version 满足所有 pragma solidity 约束
func Check(decls []parser.Declaration, version string) error {
	for _, c := range Constraints(decls) {
		ok, err := Satisfies(c, version)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("solc %s does not satisfy pragma solidity %s", version, c)
		}
	}
	return nil
}
