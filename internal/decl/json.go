package decl

import (
	"encoding/json"
	"fmt"
	"io"
)

// Document is the interchange format produced by the external parser:
// a flat JSON object with one "declarations" array, every node tagged
// with a "kind" discriminator.
type Document struct {
	Declarations []Decl
}

// DecodeDocument decodes a parser document. Structural JSON errors are
// returned; unknown node kinds are not errors — they decode into the
// Raw* variants and surface later as comment placeholders.
func DecodeDocument(r io.Reader) (*Document, error) {
	var raw struct {
		Declarations []json.RawMessage `json:"declarations"`
	}
	dec := json.NewDecoder(r)
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}

	doc := &Document{Declarations: make([]Decl, 0, len(raw.Declarations))}
	for i, msg := range raw.Declarations {
		d, err := decodeDecl(msg)
		if err != nil {
			return nil, fmt.Errorf("decode declaration %d: %w", i, err)
		}
		doc.Declarations = append(doc.Declarations, d)
	}
	return doc, nil
}

// jsonNode is the superset of fields any node kind may carry.
type jsonNode struct {
	Kind       string            `json:"kind"`
	Name       string            `json:"name"`
	Text       string            `json:"text"`
	Value      string            `json:"value"`
	Optional   bool              `json:"optional"`
	Qualifier  []string          `json:"qualifier"`
	Type       json.RawMessage   `json:"type"`
	Sig        *jsonSignature    `json:"signature"`
	Decls      []json.RawMessage `json:"decls"`
	Members    []json.RawMessage `json:"members"`
	Parents    []json.RawMessage `json:"parents"`
	Args       []json.RawMessage `json:"args"`
	TypeParams []jsonTypeParam   `json:"typeParams"`
	IndexName  string            `json:"indexName"`
	IndexType  json.RawMessage   `json:"indexType"`
	ValueType  json.RawMessage   `json:"valueType"`
	Elem       json.RawMessage   `json:"elem"`
}

type jsonSignature struct {
	TypeParams []jsonTypeParam `json:"typeParams"`
	Params     []jsonParam     `json:"params"`
	Result     json.RawMessage `json:"result"`
}

type jsonTypeParam struct {
	Name  string          `json:"name"`
	Bound json.RawMessage `json:"bound"`
}

type jsonParam struct {
	Name     string          `json:"name"`
	Optional bool            `json:"optional"`
	Type     json.RawMessage `json:"type"`
}

func (n *jsonNode) rawText(msg json.RawMessage) string {
	if n.Text != "" {
		return n.Text
	}
	return string(msg)
}

func decodeDecl(msg json.RawMessage) (Decl, error) {
	var n jsonNode
	if err := json.Unmarshal(msg, &n); err != nil {
		return nil, err
	}

	switch n.Kind {
	case "module":
		decls := make([]Decl, 0, len(n.Decls))
		for _, dm := range n.Decls {
			d, err := decodeDecl(dm)
			if err != nil {
				return nil, err
			}
			decls = append(decls, d)
		}
		return ModuleDecl{Name: n.Name, Decls: decls}, nil

	case "var":
		t, err := decodeOptionalType(n.Type)
		if err != nil {
			return nil, err
		}
		return VarDecl{Name: n.Name, Type: t}, nil

	case "typealias":
		t, err := decodeOptionalType(n.Type)
		if err != nil {
			return nil, err
		}
		if t == nil {
			return RawDecl{Raw: n.rawText(msg)}, nil
		}
		return TypeAliasDecl{Name: n.Name, Type: t}, nil

	case "interface":
		tparams, err := decodeTypeParams(n.TypeParams)
		if err != nil {
			return nil, err
		}
		parents, err := decodeTypes(n.Parents)
		if err != nil {
			return nil, err
		}
		members, err := decodeMembers(n.Members)
		if err != nil {
			return nil, err
		}
		return InterfaceDecl{Name: n.Name, TypeParams: tparams, Parents: parents, Members: members}, nil

	case "function":
		sig, err := decodeSignature(n.Sig)
		if err != nil {
			return nil, err
		}
		return FuncDecl{Name: n.Name, Sig: sig}, nil

	default:
		return RawDecl{Raw: n.rawText(msg)}, nil
	}
}

func decodeMembers(msgs []json.RawMessage) ([]Member, error) {
	out := make([]Member, 0, len(msgs))
	for _, msg := range msgs {
		m, err := decodeMember(msg)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

func decodeMember(msg json.RawMessage) (Member, error) {
	var n jsonNode
	if err := json.Unmarshal(msg, &n); err != nil {
		return nil, err
	}

	switch n.Kind {
	case "call":
		sig, err := decodeSignature(n.Sig)
		if err != nil {
			return nil, err
		}
		return CallMember{Sig: sig}, nil

	case "ctor":
		sig, err := decodeSignature(n.Sig)
		if err != nil {
			return nil, err
		}
		return CtorMember{Sig: sig}, nil

	case "property":
		t, err := decodeOptionalType(n.Type)
		if err != nil {
			return nil, err
		}
		return PropertyMember{Name: n.Name, Optional: n.Optional, Type: t}, nil

	case "method":
		sig, err := decodeSignature(n.Sig)
		if err != nil {
			return nil, err
		}
		return FuncMember{Name: n.Name, Optional: n.Optional, Sig: sig}, nil

	case "index":
		it, err := decodeOptionalType(n.IndexType)
		if err != nil {
			return nil, err
		}
		vt, err := decodeOptionalType(n.ValueType)
		if err != nil {
			return nil, err
		}
		if it == nil || vt == nil {
			return RawMember{Raw: n.rawText(msg)}, nil
		}
		return IndexMember{IndexName: n.IndexName, IndexType: it, ValueType: vt}, nil

	default:
		return RawMember{Raw: n.rawText(msg)}, nil
	}
}

func decodeTypes(msgs []json.RawMessage) ([]Type, error) {
	out := make([]Type, 0, len(msgs))
	for _, msg := range msgs {
		t, err := decodeType(msg)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

func decodeOptionalType(msg json.RawMessage) (Type, error) {
	if len(msg) == 0 || string(msg) == "null" {
		return nil, nil
	}
	return decodeType(msg)
}

func decodeType(msg json.RawMessage) (Type, error) {
	var n jsonNode
	if err := json.Unmarshal(msg, &n); err != nil {
		return nil, err
	}

	switch n.Kind {
	case "ref":
		args, err := decodeTypes(n.Args)
		if err != nil {
			return nil, err
		}
		return TypeRefNode{Qualifier: n.Qualifier, Name: n.Name, Args: args}, nil

	case "object":
		members, err := decodeMembers(n.Members)
		if err != nil {
			return nil, err
		}
		return ObjectType{Members: members}, nil

	case "function":
		sig, err := decodeSignature(n.Sig)
		if err != nil {
			return nil, err
		}
		return FuncType{Sig: sig}, nil

	case "repeated":
		elem, err := decodeOptionalType(n.Elem)
		if err != nil {
			return nil, err
		}
		if elem == nil {
			return RawType{Raw: n.rawText(msg)}, nil
		}
		return RepeatedType{Elem: elem}, nil

	case "const":
		return ConstType{Value: n.Value}, nil

	default:
		return RawType{Raw: n.rawText(msg)}, nil
	}
}

func decodeSignature(sig *jsonSignature) (Signature, error) {
	if sig == nil {
		return Signature{}, nil
	}

	tparams, err := decodeTypeParams(sig.TypeParams)
	if err != nil {
		return Signature{}, err
	}

	params := make([]Param, 0, len(sig.Params))
	for _, jp := range sig.Params {
		t, err := decodeOptionalType(jp.Type)
		if err != nil {
			return Signature{}, err
		}
		params = append(params, Param{Name: jp.Name, Optional: jp.Optional, Type: t})
	}

	result, err := decodeOptionalType(sig.Result)
	if err != nil {
		return Signature{}, err
	}

	return Signature{TypeParams: tparams, Params: params, Result: result}, nil
}

func decodeTypeParams(jtps []jsonTypeParam) ([]TypeParam, error) {
	if len(jtps) == 0 {
		return nil, nil
	}
	out := make([]TypeParam, 0, len(jtps))
	for _, jtp := range jtps {
		bound, err := decodeOptionalType(jtp.Bound)
		if err != nil {
			return nil, err
		}
		out = append(out, TypeParam{Name: jtp.Name, Bound: bound})
	}
	return out, nil
}
