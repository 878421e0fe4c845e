package java

import (
	"context"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	tsjava "github.com/smacker/go-tree-sitter/java"
	"github.com/viant/symdiff/inspector/info"
	"github.com/viant/symdiff/inspector/symbol"
)

// Inspector extracts symbols from Java source using tree-sitter
type Inspector struct {
	config *info.Config
}

// NewInspector creates a new Java Inspector with the provided configuration
func NewInspector(config *info.Config) *Inspector {
	if config == nil {
		config = info.DefaultConfig()
	}
	return &Inspector{config: config}
}

// Language returns language identifier
func (i *Inspector) Language() string {
	return "java"
}

// Inspect parses Java source code and extracts classes, interfaces, enums and imports
func (i *Inspector) Inspect(ctx context.Context, src []byte) (*symbol.File, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(tsjava.GetLanguage())
	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("failed to parse source: %w", err)
	}
	root := tree.RootNode()
	aFile := &symbol.File{Language: i.Language()}
	for j := 0; j < int(root.NamedChildCount()); j++ {
		node := root.NamedChild(j)
		switch node.Type() {
		case "import_declaration":
			if imp, ok := parseImportDeclaration(node, src); ok {
				aFile.Imports = append(aFile.Imports, imp)
			}
		case "class_declaration", "interface_declaration", "enum_declaration", "record_declaration":
			i.processType(aFile, node, src, "")
		}
	}
	return aFile, nil
}

// processType adds a type declaration and its nested types to the file
func (i *Inspector) processType(aFile *symbol.File, node *sitter.Node, src []byte, parent string) {
	aType := parseTypeDeclaration(node, src)
	if aType == nil || !i.include(aType.Exported) {
		return
	}
	aType.Parent = parent
	aFile.AddSymbol(aType)

	bodyNode := node.ChildByFieldName("body")
	if bodyNode == nil {
		return
	}
	interfaceBody := aType.Kind == symbol.KindInterface
	for j := 0; j < int(bodyNode.NamedChildCount()); j++ {
		child := bodyNode.NamedChild(j)
		switch child.Type() {
		case "field_declaration", "constant_declaration":
			for _, field := range parseFieldDeclaration(child, src, interfaceBody) {
				if i.include(field.Exported) {
					aType.AddMember(field)
				}
			}
		case "method_declaration", "constructor_declaration":
			method := parseMethodDeclaration(child, src, interfaceBody)
			if method == nil || !i.include(method.Exported) {
				continue
			}
			aType.AddMember(method)
			aFile.AddSymbol(&symbol.Symbol{
				Name:      method.Name,
				Parent:    aType.QualifiedName(),
				Kind:      symbol.KindMethod,
				Range:     method.Range,
				Exported:  method.Exported,
				Signature: method.Signature,
				Body:      method.Body,
				Text:      method.Text,
			})
		case "class_declaration", "interface_declaration", "enum_declaration", "record_declaration":
			i.processType(aFile, child, src, aType.QualifiedName())
		case "enum_body_declarations":
			// enum members follow constants
			for k := 0; k < int(child.NamedChildCount()); k++ {
				member := child.NamedChild(k)
				switch member.Type() {
				case "field_declaration":
					for _, field := range parseFieldDeclaration(member, src, false) {
						if i.include(field.Exported) {
							aType.AddMember(field)
						}
					}
				case "method_declaration", "constructor_declaration":
					if method := parseMethodDeclaration(member, src, false); method != nil && i.include(method.Exported) {
						aType.AddMember(method)
					}
				}
			}
		case "enum_constant":
			if nameNode := child.ChildByFieldName("name"); nameNode != nil {
				aType.AddMember(&symbol.Member{
					Name:      nameNode.Content(src),
					Kind:      symbol.MemberProperty,
					Signature: child.Content(src),
					Text:      child.Content(src),
					Range:     rangeOf(child),
					Exported:  aType.Exported,
				})
			}
		}
	}
}

func (i *Inspector) include(exported bool) bool {
	return exported || i.config.IncludeUnexported
}

// parseImportDeclaration extracts an import path, e.g. java.util.List or java.util.*
func parseImportDeclaration(node *sitter.Node, src []byte) (symbol.Import, bool) {
	var importPath string
	wildcard := false
	for j := 0; j < int(node.NamedChildCount()); j++ {
		child := node.NamedChild(j)
		switch child.Type() {
		case "scoped_identifier", "identifier":
			importPath = child.Content(src)
		case "asterisk":
			wildcard = true
		}
	}
	if importPath == "" {
		return symbol.Import{}, false
	}
	name := importPath[strings.LastIndex(importPath, ".")+1:]
	if wildcard {
		importPath += ".*"
		name = ""
	}
	return symbol.Import{Name: name, Path: importPath}, true
}

// parseTypeDeclaration extracts class, interface, enum or record header information
func parseTypeDeclaration(node *sitter.Node, src []byte) *symbol.Symbol {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return nil
	}
	aType := &symbol.Symbol{
		Name:     nameNode.Content(src),
		Kind:     symbol.KindClass,
		Range:    rangeOf(node),
		Exported: isPublic(node, src),
		Text:     node.Content(src),
	}
	if node.Type() == "interface_declaration" {
		aType.Kind = symbol.KindInterface
	}
	if bodyNode := node.ChildByFieldName("body"); bodyNode != nil {
		aType.Signature = strings.TrimSpace(string(src[node.StartByte():bodyNode.StartByte()]))
	}
	if superclass := node.ChildByFieldName("superclass"); superclass != nil {
		aType.Extends = strings.TrimSpace(strings.TrimPrefix(superclass.Content(src), "extends"))
	}
	for j := 0; j < int(node.NamedChildCount()); j++ {
		child := node.NamedChild(j)
		switch child.Type() {
		case "super_interfaces", "extends_interfaces":
			aType.Implements = append(aType.Implements, typeList(child, src)...)
		}
	}
	return aType
}

// typeList returns type names listed in super_interfaces or extends_interfaces
func typeList(node *sitter.Node, src []byte) []string {
	var result []string
	for j := 0; j < int(node.NamedChildCount()); j++ {
		child := node.NamedChild(j)
		if child.Type() != "type_list" {
			continue
		}
		for k := 0; k < int(child.NamedChildCount()); k++ {
			result = append(result, child.NamedChild(k).Content(src))
		}
	}
	return result
}

// parseFieldDeclaration extracts one member per declarator, e.g. int a, b;
func parseFieldDeclaration(node *sitter.Node, src []byte, interfaceBody bool) []*symbol.Member {
	var result []*symbol.Member
	typeName := ""
	if typeNode := node.ChildByFieldName("type"); typeNode != nil {
		typeName = typeNode.Content(src)
	}
	exported := interfaceBody || isPublic(node, src)
	for j := 0; j < int(node.NamedChildCount()); j++ {
		declarator := node.NamedChild(j)
		if declarator.Type() != "variable_declarator" {
			continue
		}
		nameNode := declarator.ChildByFieldName("name")
		if nameNode == nil {
			continue
		}
		body := ""
		if valueNode := declarator.ChildByFieldName("value"); valueNode != nil {
			body = valueNode.Content(src)
		}
		result = append(result, &symbol.Member{
			Name:      nameNode.Content(src),
			Kind:      symbol.MemberProperty,
			Signature: strings.TrimSpace(modifiers(node, src) + " " + typeName + " " + nameNode.Content(src)),
			Body:      body,
			Text:      node.Content(src),
			Range:     rangeOf(node),
			Exported:  exported,
			IsStatic:  hasModifier(node, src, "static"),
		})
	}
	return result
}

// parseMethodDeclaration extracts a method or constructor member
func parseMethodDeclaration(node *sitter.Node, src []byte, interfaceBody bool) *symbol.Member {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return nil
	}
	kind := symbol.MemberMethod
	if node.Type() == "constructor_declaration" {
		kind = symbol.MemberConstructor
	}
	signature := strings.TrimSpace(node.Content(src))
	body := ""
	if bodyNode := node.ChildByFieldName("body"); bodyNode != nil {
		signature = strings.TrimSpace(string(src[node.StartByte():bodyNode.StartByte()]))
		body = strings.TrimSpace(strings.TrimSuffix(strings.TrimPrefix(bodyNode.Content(src), "{"), "}"))
	}
	return &symbol.Member{
		Name:      nameNode.Content(src) + parameterTypes(node, src),
		Kind:      kind,
		Signature: signature,
		Body:      body,
		Text:      node.Content(src),
		Range:     rangeOf(node),
		Exported:  interfaceBody || isPublic(node, src),
		IsStatic:  hasModifier(node, src, "static"),
	}
}

// parameterTypes returns the erased parameter list, e.g. (int,String...), so overloads get distinct names
func parameterTypes(node *sitter.Node, src []byte) string {
	parameters := node.ChildByFieldName("parameters")
	if parameters == nil {
		return "()"
	}
	var types []string
	for j := 0; j < int(parameters.NamedChildCount()); j++ {
		parameter := parameters.NamedChild(j)
		switch parameter.Type() {
		case "formal_parameter":
			typeName := ""
			if typeNode := parameter.ChildByFieldName("type"); typeNode != nil {
				typeName = typeNode.Content(src)
			}
			if dimensions := parameter.ChildByFieldName("dimensions"); dimensions != nil {
				typeName += dimensions.Content(src)
			}
			types = append(types, typeName)
		case "spread_parameter":
			for k := 0; k < int(parameter.NamedChildCount()); k++ {
				child := parameter.NamedChild(k)
				if child.Type() == "modifiers" || child.Type() == "variable_declarator" {
					continue
				}
				types = append(types, child.Content(src)+"...")
				break
			}
		}
	}
	return "(" + strings.Join(strings.Fields(strings.Join(types, ",")), "") + ")"
}

// modifiers returns modifier keywords without annotations
func modifiers(node *sitter.Node, src []byte) string {
	var result []string
	for j := 0; j < int(node.ChildCount()); j++ {
		child := node.Child(j)
		if child.Type() != "modifiers" {
			continue
		}
		for k := 0; k < int(child.ChildCount()); k++ {
			modifier := child.Child(k)
			switch modifier.Type() {
			case "marker_annotation", "annotation", "line_comment", "block_comment":
				continue
			}
			result = append(result, modifier.Content(src))
		}
	}
	return strings.Join(result, " ")
}

func hasModifier(node *sitter.Node, src []byte, keyword string) bool {
	for _, modifier := range strings.Fields(modifiers(node, src)) {
		if modifier == keyword {
			return true
		}
	}
	return false
}

// isPublic treats public and protected declarations as part of the API surface
func isPublic(node *sitter.Node, src []byte) bool {
	return hasModifier(node, src, "public") || hasModifier(node, src, "protected")
}

func rangeOf(node *sitter.Node) symbol.Range {
	return symbol.Range{
		StartLine: int(node.StartPoint().Row) + 1,
		EndLine:   int(node.EndPoint().Row) + 1,
	}
}
