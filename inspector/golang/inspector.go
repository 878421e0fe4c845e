package golang

import (
	"context"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	sitter "github.com/smacker/go-tree-sitter"
	tsgo "github.com/smacker/go-tree-sitter/golang"
	"github.com/viant/symdiff/inspector/info"
	"github.com/viant/symdiff/inspector/symbol"
)

// Inspector extracts symbols from Go source using tree-sitter
type Inspector struct {
	config *info.Config
}

// NewInspector creates a new Inspector with the provided configuration
func NewInspector(config *info.Config) *Inspector {
	if config == nil {
		config = info.DefaultConfig()
	}
	return &Inspector{config: config}
}

// Language returns language identifier
func (i *Inspector) Language() string {
	return "go"
}

// Inspect parses Go source code and extracts types, functions, methods and imports
func (i *Inspector) Inspect(ctx context.Context, src []byte) (*symbol.File, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(tsgo.GetLanguage())
	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("failed to parse source: %w", err)
	}
	return i.processFile(tree.RootNode(), src), nil
}

// processFile extracts symbols in two passes: type declarations first, then functions and methods
func (i *Inspector) processFile(root *sitter.Node, src []byte) *symbol.File {
	aFile := &symbol.File{Language: i.Language()}
	types := map[string]*symbol.Symbol{}
	var funcNodes []*sitter.Node

	for j := 0; j < int(root.NamedChildCount()); j++ {
		node := root.NamedChild(j)
		switch node.Type() {
		case "import_declaration":
			aFile.Imports = append(aFile.Imports, parseImports(node, src)...)
		case "type_declaration":
			for _, aType := range parseTypeDeclaration(node, src, i.config) {
				if !i.include(aType.Exported) {
					continue
				}
				if _, ok := types[aType.Name]; ok {
					continue
				}
				types[aType.Name] = aType
				aFile.AddSymbol(aType)
			}
		case "function_declaration", "method_declaration":
			funcNodes = append(funcNodes, node)
		}
	}

	inits := 0
	for _, node := range funcNodes {
		if node.Type() == "function_declaration" {
			function := parseFunctionDeclaration(node, src)
			if function == nil {
				continue
			}
			// a file may declare several init functions; later ones are numbered by position
			if function.Name == "init" {
				if inits++; inits > 1 {
					function.Name = fmt.Sprintf("init@%d", inits)
				}
			}
			if i.include(function.Exported) {
				aFile.AddSymbol(function)
			}
			continue
		}
		receiver, method := parseMethodDeclaration(node, src)
		if method == nil || receiver == "" || !i.include(method.Exported) {
			continue
		}
		owner, ok := types[receiver]
		if !ok {
			if !i.include(isExported(receiver)) {
				continue
			}
			// receiver declared in another file of the package
			owner = &symbol.Symbol{
				Name:      receiver,
				Kind:      symbol.KindClass,
				Exported:  isExported(receiver),
				Range:     method.Range,
				Synthetic: true,
			}
			types[receiver] = owner
			aFile.AddSymbol(owner)
		}
		owner.AddMember(method)
		aFile.AddSymbol(&symbol.Symbol{
			Name:      method.Name,
			Parent:    owner.Name,
			Kind:      symbol.KindMethod,
			Range:     method.Range,
			Exported:  method.Exported,
			Signature: method.Signature,
			Body:      method.Body,
			Text:      method.Text,
		})
	}
	return aFile
}

func (i *Inspector) include(exported bool) bool {
	return exported || i.config.IncludeUnexported
}

// parseImports extracts import specs from an import declaration
func parseImports(node *sitter.Node, src []byte) []symbol.Import {
	var result []symbol.Import
	var visit func(n *sitter.Node)
	visit = func(n *sitter.Node) {
		for j := 0; j < int(n.NamedChildCount()); j++ {
			child := n.NamedChild(j)
			switch child.Type() {
			case "import_spec_list":
				visit(child)
			case "import_spec":
				pathNode := child.ChildByFieldName("path")
				if pathNode == nil {
					continue
				}
				importPath := strings.Trim(pathNode.Content(src), "\"`")
				name := ""
				if nameNode := child.ChildByFieldName("name"); nameNode != nil {
					name = nameNode.Content(src)
				} else {
					parts := strings.Split(importPath, "/")
					name = parts[len(parts)-1]
				}
				result = append(result, symbol.Import{Name: name, Path: importPath})
			}
		}
	}
	visit(node)
	return result
}

// parseTypeDeclaration extracts struct, interface and defined types
func parseTypeDeclaration(node *sitter.Node, src []byte, config *info.Config) []*symbol.Symbol {
	var result []*symbol.Symbol
	for j := 0; j < int(node.NamedChildCount()); j++ {
		spec := node.NamedChild(j)
		if spec.Type() != "type_spec" && spec.Type() != "type_alias" {
			continue
		}
		nameNode := spec.ChildByFieldName("name")
		typeNode := spec.ChildByFieldName("type")
		if nameNode == nil || typeNode == nil {
			continue
		}
		name := nameNode.Content(src)
		aType := &symbol.Symbol{
			Name:     name,
			Kind:     symbol.KindClass,
			Range:    rangeOf(spec),
			Exported: isExported(name),
			Text:     spec.Content(src),
		}
		switch typeNode.Type() {
		case "struct_type":
			aType.Signature = "type " + header(spec, typeNode, src) + " struct"
			parseStructFields(aType, typeNode, src, config)
		case "interface_type":
			aType.Kind = symbol.KindInterface
			aType.Signature = "type " + header(spec, typeNode, src) + " interface"
			parseInterfaceElements(aType, typeNode, src, config)
		default:
			aType.Signature = "type " + spec.Content(src)
		}
		result = append(result, aType)
	}
	return result
}

// parseStructFields adds fields as property members; embedded fields are recorded as implemented types
func parseStructFields(owner *symbol.Symbol, structNode *sitter.Node, src []byte, config *info.Config) {
	var fieldList *sitter.Node
	for j := 0; j < int(structNode.NamedChildCount()); j++ {
		if child := structNode.NamedChild(j); child.Type() == "field_declaration_list" {
			fieldList = child
			break
		}
	}
	if fieldList == nil {
		return
	}
	for j := 0; j < int(fieldList.NamedChildCount()); j++ {
		fieldNode := fieldList.NamedChild(j)
		if fieldNode.Type() != "field_declaration" {
			continue
		}
		typeNode := fieldNode.ChildByFieldName("type")
		var names []string
		for k := 0; k < int(fieldNode.NamedChildCount()); k++ {
			if child := fieldNode.NamedChild(k); child.Type() == "field_identifier" {
				names = append(names, child.Content(src))
			}
		}
		if len(names) == 0 {
			if typeNode != nil {
				owner.Implements = append(owner.Implements, strings.TrimPrefix(typeNode.Content(src), "*"))
			}
			continue
		}
		signature := ""
		if typeNode != nil {
			signature = typeNode.Content(src)
		}
		if tagNode := fieldNode.ChildByFieldName("tag"); tagNode != nil {
			signature += " " + tagNode.Content(src)
		}
		for _, name := range names {
			exported := isExported(name)
			if !exported && !config.IncludeUnexported {
				continue
			}
			owner.AddMember(&symbol.Member{
				Name:      name,
				Kind:      symbol.MemberProperty,
				Signature: name + " " + signature,
				Text:      fieldNode.Content(src),
				Range:     rangeOf(fieldNode),
				Exported:  exported,
			})
		}
	}
}

// parseInterfaceElements adds interface methods as members; embedded interfaces are recorded as implemented types
func parseInterfaceElements(owner *symbol.Symbol, interfaceNode *sitter.Node, src []byte, config *info.Config) {
	for j := 0; j < int(interfaceNode.NamedChildCount()); j++ {
		child := interfaceNode.NamedChild(j)
		switch child.Type() {
		case "method_elem", "method_spec":
			nameNode := child.ChildByFieldName("name")
			if nameNode == nil {
				continue
			}
			name := nameNode.Content(src)
			exported := isExported(name)
			if !exported && !config.IncludeUnexported {
				continue
			}
			owner.AddMember(&symbol.Member{
				Name:      name,
				Kind:      symbol.MemberMethod,
				Signature: child.Content(src),
				Text:      child.Content(src),
				Range:     rangeOf(child),
				Exported:  exported,
			})
		case "type_elem", "constraint_elem", "interface_type_name", "type_identifier", "qualified_type":
			owner.Implements = append(owner.Implements, child.Content(src))
		}
	}
}

// parseFunctionDeclaration extracts a function symbol
func parseFunctionDeclaration(node *sitter.Node, src []byte) *symbol.Symbol {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return nil
	}
	name := nameNode.Content(src)
	signature, body := splitBody(node, src)
	return &symbol.Symbol{
		Name:      name,
		Kind:      symbol.KindFunction,
		Range:     rangeOf(node),
		Exported:  isExported(name),
		Signature: signature,
		Body:      body,
		Text:      node.Content(src),
	}
}

// parseMethodDeclaration extracts receiver base type name and method member
func parseMethodDeclaration(node *sitter.Node, src []byte) (string, *symbol.Member) {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return "", nil
	}
	name := nameNode.Content(src)
	receiver := ""
	if receiverNode := node.ChildByFieldName("receiver"); receiverNode != nil {
		for j := 0; j < int(receiverNode.NamedChildCount()); j++ {
			param := receiverNode.NamedChild(j)
			if param.Type() != "parameter_declaration" {
				continue
			}
			if typeNode := param.ChildByFieldName("type"); typeNode != nil {
				receiver = baseTypeName(typeNode.Content(src))
			}
			break
		}
	}
	signature, body := splitBody(node, src)
	return receiver, &symbol.Member{
		Name:      name,
		Kind:      symbol.MemberMethod,
		Signature: signature,
		Body:      body,
		Text:      node.Content(src),
		Range:     rangeOf(node),
		Exported:  isExported(name),
	}
}

// splitBody returns declaration header and body content
func splitBody(node *sitter.Node, src []byte) (string, string) {
	bodyNode := node.ChildByFieldName("body")
	if bodyNode == nil {
		return strings.TrimSpace(node.Content(src)), ""
	}
	signature := string(src[node.StartByte():bodyNode.StartByte()])
	body := bodyNode.Content(src)
	body = strings.TrimSuffix(strings.TrimPrefix(body, "{"), "}")
	return strings.TrimSpace(signature), strings.TrimSpace(body)
}

// header returns type spec text preceding its type expression, e.g. List[T any]
func header(spec, typeNode *sitter.Node, src []byte) string {
	return strings.TrimSpace(string(src[spec.StartByte():typeNode.StartByte()]))
}

// baseTypeName turns *List[T] into List
func baseTypeName(typeName string) string {
	typeName = strings.TrimLeft(typeName, "*")
	if idx := strings.Index(typeName, "["); idx != -1 {
		typeName = typeName[:idx]
	}
	return strings.TrimSpace(typeName)
}

func rangeOf(node *sitter.Node) symbol.Range {
	return symbol.Range{
		StartLine: int(node.StartPoint().Row) + 1,
		EndLine:   int(node.EndPoint().Row) + 1,
	}
}

func isExported(name string) bool {
	r, _ := utf8.DecodeRuneInString(name)
	return unicode.IsUpper(r)
}
