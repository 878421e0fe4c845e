package jsx

import (
	"context"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/viant/symdiff/inspector/info"
	"github.com/viant/symdiff/inspector/symbol"
)

// Inspector extracts symbols from JavaScript and JSX source using tree-sitter
type Inspector struct {
	config *info.Config
}

// NewInspector creates a new JSX Inspector with the provided configuration
func NewInspector(config *info.Config) *Inspector {
	if config == nil {
		config = info.DefaultConfig()
	}
	return &Inspector{config: config}
}

// Language returns language identifier
func (i *Inspector) Language() string {
	return "javascript"
}

// Inspect parses JavaScript source and extracts classes, functions, arrow function components and imports
func (i *Inspector) Inspect(ctx context.Context, src []byte) (*symbol.File, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(javascript.GetLanguage())
	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("failed to parse source: %w", err)
	}
	root := tree.RootNode()
	aFile := &symbol.File{Language: i.Language()}
	for j := 0; j < int(root.NamedChildCount()); j++ {
		node := root.NamedChild(j)
		switch node.Type() {
		case "import_statement":
			if imp, ok := parseImportStatement(node, src); ok {
				aFile.Imports = append(aFile.Imports, imp)
			}
		case "export_statement":
			if declaration := node.ChildByFieldName("declaration"); declaration != nil {
				i.processDeclaration(aFile, declaration, src, true)
				continue
			}
			// export default class/function
			for k := 0; k < int(node.NamedChildCount()); k++ {
				i.processDeclaration(aFile, node.NamedChild(k), src, true)
			}
		default:
			i.processDeclaration(aFile, node, src, false)
		}
	}
	return aFile, nil
}

// processDeclaration adds class, function or const-bound function symbols
func (i *Inspector) processDeclaration(aFile *symbol.File, node *sitter.Node, src []byte, exported bool) {
	if !i.include(exported) {
		return
	}
	switch node.Type() {
	case "class_declaration", "class":
		if class := i.parseClass(aFile, node, src, exported); class != nil {
			aFile.AddSymbol(class)
		}
	case "function_declaration", "generator_function_declaration":
		if function := parseFunction(node, node, src, exported); function != nil {
			aFile.AddSymbol(function)
		}
	case "lexical_declaration", "variable_declaration":
		for k := 0; k < int(node.NamedChildCount()); k++ {
			declarator := node.NamedChild(k)
			if declarator.Type() != "variable_declarator" {
				continue
			}
			value := declarator.ChildByFieldName("value")
			if value == nil {
				continue
			}
			switch value.Type() {
			case "arrow_function", "function_expression", "function":
				if function := parseFunction(declarator, value, src, exported); function != nil {
					aFile.AddSymbol(function)
				}
			case "class":
				if class := i.parseClass(aFile, value, src, exported); class != nil {
					if nameNode := declarator.ChildByFieldName("name"); nameNode != nil {
						class.Name = nameNode.Content(src)
					}
					aFile.AddSymbol(class)
				}
			}
		}
	}
}

func (i *Inspector) include(exported bool) bool {
	return exported || i.config.IncludeUnexported
}

// parseImportStatement extracts import source and default import name
func parseImportStatement(node *sitter.Node, src []byte) (symbol.Import, bool) {
	sourceNode := node.ChildByFieldName("source")
	if sourceNode == nil {
		return symbol.Import{}, false
	}
	imp := symbol.Import{Path: strings.Trim(sourceNode.Content(src), "'\"`")}
	for j := 0; j < int(node.NamedChildCount()); j++ {
		clause := node.NamedChild(j)
		if clause.Type() != "import_clause" {
			continue
		}
		for k := 0; k < int(clause.NamedChildCount()); k++ {
			if child := clause.NamedChild(k); child.Type() == "identifier" {
				imp.Name = child.Content(src)
			}
		}
	}
	return imp, true
}

// parseClass extracts class header, methods and fields
func (i *Inspector) parseClass(aFile *symbol.File, node *sitter.Node, src []byte, exported bool) *symbol.Symbol {
	class := &symbol.Symbol{
		Kind:     symbol.KindClass,
		Range:    rangeOf(node),
		Exported: exported,
		Text:     node.Content(src),
	}
	if nameNode := node.ChildByFieldName("name"); nameNode != nil {
		class.Name = nameNode.Content(src)
	}
	bodyNode := node.ChildByFieldName("body")
	if bodyNode != nil {
		class.Signature = strings.TrimSpace(string(src[node.StartByte():bodyNode.StartByte()]))
	}
	for j := 0; j < int(node.NamedChildCount()); j++ {
		if child := node.NamedChild(j); child.Type() == "class_heritage" {
			class.Extends = strings.TrimSpace(strings.TrimPrefix(child.Content(src), "extends"))
		}
	}
	if class.Name == "" && exported {
		class.Name = "default"
	}
	if bodyNode == nil {
		return class
	}
	for j := 0; j < int(bodyNode.NamedChildCount()); j++ {
		child := bodyNode.NamedChild(j)
		var member *symbol.Member
		switch child.Type() {
		case "method_definition":
			member = parseMethod(child, src, exported)
		case "field_definition", "public_field_definition":
			member = parseField(child, src, exported)
		}
		if member == nil || !i.include(member.Exported) {
			continue
		}
		class.AddMember(member)
		if member.Kind == symbol.MemberProperty {
			continue
		}
		aFile.AddSymbol(&symbol.Symbol{
			Name:      member.Name,
			Parent:    class.Name,
			Kind:      symbol.KindMethod,
			Range:     member.Range,
			Exported:  member.Exported,
			Signature: member.Signature,
			Body:      member.Body,
			Text:      member.Text,
		})
	}
	return class
}

// parseMethod extracts a method, constructor or accessor
func parseMethod(node *sitter.Node, src []byte, classExported bool) *symbol.Member {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return nil
	}
	name := nameNode.Content(src)
	member := &symbol.Member{
		Name:     name,
		Kind:     symbol.MemberMethod,
		Text:     node.Content(src),
		Range:    rangeOf(node),
		Exported: classExported && !strings.HasPrefix(name, "#"),
	}
	for k := 0; k < int(node.ChildCount()); k++ {
		switch node.Child(k).Type() {
		case "get":
			member.Kind = symbol.MemberGetter
		case "set":
			member.Kind = symbol.MemberSetter
		case "static":
			member.IsStatic = true
		}
	}
	if name == "constructor" {
		member.Kind = symbol.MemberConstructor
	}
	member.Signature, member.Body = splitBody(node, node.ChildByFieldName("body"), src)
	// accessors share a name; keep them apart
	switch member.Kind {
	case symbol.MemberGetter:
		member.Name = "get " + name
	case symbol.MemberSetter:
		member.Name = "set " + name
	}
	return member
}

// parseField extracts a class field
func parseField(node *sitter.Node, src []byte, classExported bool) *symbol.Member {
	nameNode := node.ChildByFieldName("property")
	if nameNode == nil {
		nameNode = node.ChildByFieldName("name")
	}
	if nameNode == nil {
		return nil
	}
	name := nameNode.Content(src)
	member := &symbol.Member{
		Name:      name,
		Kind:      symbol.MemberProperty,
		Signature: name,
		Text:      node.Content(src),
		Range:     rangeOf(node),
		Exported:  classExported && !strings.HasPrefix(name, "#"),
	}
	if value := node.ChildByFieldName("value"); value != nil {
		member.Body = value.Content(src)
	}
	for k := 0; k < int(node.ChildCount()); k++ {
		if node.Child(k).Type() == "static" {
			member.IsStatic = true
			member.Signature = "static " + name
		}
	}
	return member
}

// parseFunction extracts a function symbol; owner holds the name, node holds parameters and body
func parseFunction(owner, node *sitter.Node, src []byte, exported bool) *symbol.Symbol {
	nameNode := owner.ChildByFieldName("name")
	if nameNode == nil {
		return nil
	}
	signature, body := splitBody(owner, node.ChildByFieldName("body"), src)
	return &symbol.Symbol{
		Name:      nameNode.Content(src),
		Kind:      symbol.KindFunction,
		Range:     rangeOf(owner),
		Exported:  exported,
		Signature: signature,
		Body:      body,
		Text:      owner.Content(src),
	}
}

// splitBody returns declaration header and body content; expression bodies are kept as is
func splitBody(node, bodyNode *sitter.Node, src []byte) (string, string) {
	if bodyNode == nil {
		return strings.TrimSpace(node.Content(src)), ""
	}
	signature := strings.TrimSpace(string(src[node.StartByte():bodyNode.StartByte()]))
	signature = strings.TrimSpace(strings.TrimSuffix(signature, "=>"))
	body := bodyNode.Content(src)
	if bodyNode.Type() == "statement_block" || bodyNode.Type() == "class_body" {
		body = strings.TrimSuffix(strings.TrimPrefix(body, "{"), "}")
	}
	return signature, strings.TrimSpace(body)
}

func rangeOf(node *sitter.Node) symbol.Range {
	return symbol.Range{
		StartLine: int(node.StartPoint().Row) + 1,
		EndLine:   int(node.EndPoint().Row) + 1,
	}
}
