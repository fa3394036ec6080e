package renderers

import (
	"fmt"
	"strings"

	"github.com/VectorBits/solo/src/internal/parser"
	"github.com/VectorBits/solo/src/internal/selector"
)

type MarkdownRenderer struct{}

func NewMarkdownRenderer() *MarkdownRenderer {
	return &MarkdownRenderer{}
}

// RenderFile 单个文件的解析结果
func (r *MarkdownRenderer) RenderFile(file, errMsg string, decls []parser.Declaration, entries []selector.Entry) string {
	var result strings.Builder

	// 文件路径作为一级标题
	result.WriteString(fmt.Sprintf("# 📄 File: `%s`\n\n", file))
	if errMsg != "" {
		result.WriteString(fmt.Sprintf("**Status**: ❌ %s\n\n", errMsg))
		return result.String()
	}
	result.WriteString(fmt.Sprintf("**Status**: ✅ %d declarations\n\n", len(decls)))

	for _, d := range decls {
		result.WriteString(r.RenderDeclaration(d))
	}

	if len(entries) > 0 {
		result.WriteString("## 🔑 Selectors\n\n")
		result.WriteString("| Contract | Kind | Signature | Selector |\n|---|---|---|---|\n")
		for _, e := range entries {
			result.WriteString(fmt.Sprintf("| %s | %s | `%s` | `%s` |\n", e.Contract, e.Kind, e.Signature, e.Selector))
		}
		result.WriteString("\n")
	}

	return result.String()
}

func (r *MarkdownRenderer) RenderDeclaration(d parser.Declaration) string {
	var b strings.Builder

	switch d.Type {
	case parser.DeclPragma:
		b.WriteString(fmt.Sprintf("- pragma `%s`\n\n", d.Content))
		return b.String()
	case parser.DeclImport:
		line := "- import " + d.From
		if len(d.Symbols) > 0 {
			names := make([]string, 0, len(d.Symbols))
			for _, s := range d.Symbols {
				if s.Alias != "" {
					names = append(names, s.Name+" as "+s.Alias)
				} else {
					names = append(names, s.Name)
				}
			}
			line += " {" + strings.Join(names, ", ") + "}"
		}
		if d.As != "" {
			line += " as " + d.As
		}
		b.WriteString(line + "\n\n")
		return b.String()
	}

	header := fmt.Sprintf("## %s %s", d.Type, d.Name)
	if len(d.Inheritance) > 0 {
		header += " is " + strings.Join(d.Inheritance, ", ")
	}
	b.WriteString(header + "\n\n")

	body := d.Body
	if body.Empty() {
		b.WriteString("_empty_\n\n")
		return b.String()
	}

	if body.Constructor != nil {
		b.WriteString(fmt.Sprintf("- 🏗️ constructor(%s)%s\n", renderParams(body.Constructor.Parameters), renderModifiers(body.Constructor.Modifiers)))
	}
	for _, f := range body.Functions {
		line := fmt.Sprintf("- ⚙️ function `%s(%s)`%s", f.Name, renderParams(f.Parameters), renderModifiers(f.Modifiers))
		if len(f.Returns) > 0 {
			line += " returns (" + strings.Join(f.Returns, ", ") + ")"
		}
		b.WriteString(line + "\n")
	}
	for _, m := range body.Modifiers {
		b.WriteString(fmt.Sprintf("- 🛡️ modifier `%s(%s)`\n", m.Name, renderParams(m.Parameters)))
	}
	for _, e := range body.Events {
		b.WriteString(fmt.Sprintf("- 📣 event `%s(%s)`\n", e.Name, renderParams(e.Parameters)))
	}
	for _, e := range body.Errors {
		b.WriteString(fmt.Sprintf("- ❗ error `%s(%s)`\n", e.Name, renderParams(e.Parameters)))
	}
	for _, v := range body.Variables {
		b.WriteString(fmt.Sprintf("- 📦 %s `%s`%s\n", v.Type, v.Name, renderModifiers(v.Modifiers)))
	}
	for _, m := range body.Mappings {
		b.WriteString(fmt.Sprintf("- 🗺️ mapping `%s`\n", m.Name))
	}
	for _, s := range body.Structs {
		fields := make([]string, 0, len(s.Fields))
		for _, f := range s.Fields {
			fields = append(fields, f.Type+" "+f.Name)
		}
		b.WriteString(fmt.Sprintf("- 🧱 struct `%s { %s }`\n", s.Name, strings.Join(fields, "; ")))
	}
	for _, e := range body.Enums {
		b.WriteString(fmt.Sprintf("- 🔢 enum `%s { %s }`\n", e.Name, strings.Join(e.Definitions, ", ")))
	}
	for _, u := range body.Usings {
		b.WriteString(fmt.Sprintf("- 🔗 using %s for %s\n", u.From, u.Target))
	}
	b.WriteString("\n")
	return b.String()
}

func renderParams(params []parser.Parameter) string {
	parts := make([]string, 0, len(params))
	for _, p := range params {
		typ := p.Type
		if len(p.Dims) > 0 {
			for _, d := range p.Dims {
				typ += "[" + d + "]"
			}
		} else {
			for _, m := range p.Modifiers {
				if m == "array" {
					typ += "[]"
				}
			}
		}
		parts = append(parts, strings.TrimSpace(typ+" "+p.Name))
	}
	return strings.Join(parts, ", ")
}

func renderModifiers(mods []string) string {
	if len(mods) == 0 {
		return ""
	}
	return " " + strings.Join(mods, " ")
}
