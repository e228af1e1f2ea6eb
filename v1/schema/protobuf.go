package schema

import (
	"fmt"

	"github.com/jhump/protoreflect/desc"
	"github.com/jhump/protoreflect/desc/protoparse"
	"github.com/jhump/protoreflect/desc/protoprint"
)

// protobufFilename is the virtual filename under which schema texts are
// parsed. Registry protobuf schemas are single files; imports beyond the
// well-known types cannot be resolved and fail the parse.
const protobufFilename = "schema.proto"

// protobufAdapter parses interface definitions with protoparse and
// treats its own printer as the canonical-form authority: the canonical
// text is the printed form of the parsed descriptor under fixed printer
// options. This format has no generic document view, and its parser has
// a single validation level, so the relaxed flag does not change
// behavior.
type protobufAdapter struct{}

func (protobufAdapter) parse(text string, relaxed bool) (any, string, error) {
	_ = relaxed

	fd, err := parseProtobufText(text)
	if err != nil {
		return nil, "", err
	}
	canonical, err := printProtobuf(fd)
	if err != nil {
		return nil, "", err
	}
	return fd, canonical, nil
}

func (protobufAdapter) render(ast any) (string, error) {
	fd, ok := ast.(*desc.FileDescriptor)
	if !ok {
		return "", fmt.Errorf("protobuf: unexpected AST type %T", ast)
	}
	return printProtobuf(fd)
}

func (a protobufAdapter) normalize(text string) (string, error) {
	_, canonical, err := a.parse(text, false)
	return canonical, err
}

func parseProtobufText(text string) (*desc.FileDescriptor, error) {
	parser := protoparse.Parser{
		Accessor: protoparse.FileContentsFromMap(map[string]string{
			protobufFilename: text,
		}),
	}
	fds, err := parser.ParseFiles(protobufFilename)
	if err != nil {
		return nil, err
	}
	return fds[0], nil
}

// printProtobuf renders a descriptor under fixed printer options. Sorted
// elements and stripped comments make the output independent of the
// source's declaration order and formatting; fingerprint deduplication
// depends on that.
func printProtobuf(fd *desc.FileDescriptor) (string, error) {
	printer := protoprint.Printer{
		SortElements: true,
		Indent:       "  ",
		OmitComments: protoprint.CommentsAll,
	}
	return printer.PrintProtoToString(fd)
}
