package proto

import (
	"fmt"

	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/descriptorpb"

	gproto "google.golang.org/protobuf/proto"
)

// File describes coinkeeper.proto. It is built by hand from the same
// definitions so the contract can be inspected without generated code.
var File protoreflect.FileDescriptor

func init() {
	fd, err := protodesc.NewFile(fileDescriptorProto(), nil)
	if err != nil {
		panic(fmt.Sprintf("coinkeeper.proto descriptor: %v", err))
	}
	File = fd
}

var (
	typeString = descriptorpb.FieldDescriptorProto_TYPE_STRING
	typeInt64  = descriptorpb.FieldDescriptorProto_TYPE_INT64
)

func field(name string, number int32, typ descriptorpb.FieldDescriptorProto_Type) *descriptorpb.FieldDescriptorProto {
	return &descriptorpb.FieldDescriptorProto{
		Name:     gproto.String(name),
		JsonName: gproto.String(name),
		Number:   gproto.Int32(number),
		Label:    descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL.Enum(),
		Type:     typ.Enum(),
	}
}

// optionalField declares a proto3 "optional" field backed by the synthetic
// oneof at oneofIndex.
func optionalField(name string, number int32, typ descriptorpb.FieldDescriptorProto_Type, oneofIndex int32) *descriptorpb.FieldDescriptorProto {
	f := field(name, number, typ)
	f.OneofIndex = gproto.Int32(oneofIndex)
	f.Proto3Optional = gproto.Bool(true)
	return f
}

func message(name string, fields ...*descriptorpb.FieldDescriptorProto) *descriptorpb.DescriptorProto {
	return &descriptorpb.DescriptorProto{Name: gproto.String(name), Field: fields}
}

func method(name, in, out string) *descriptorpb.MethodDescriptorProto {
	return &descriptorpb.MethodDescriptorProto{
		Name:       gproto.String(name),
		InputType:  gproto.String(".coinkeeper." + in),
		OutputType: gproto.String(".coinkeeper." + out),
	}
}

func accountFields() []*descriptorpb.FieldDescriptorProto {
	return []*descriptorpb.FieldDescriptorProto{
		field("token", 1, typeString),
		field("email", 2, typeString),
		field("name", 3, typeString),
		field("coins", 4, typeInt64),
	}
}

func fileDescriptorProto() *descriptorpb.FileDescriptorProto {
	login := message("LoginRequest",
		field("email", 1, typeString),
		optionalField("name", 2, typeString, 0),
	)
	login.OneofDecl = []*descriptorpb.OneofDescriptorProto{{Name: gproto.String("_name")}}

	return &descriptorpb.FileDescriptorProto{
		Name:    gproto.String("coinkeeper.proto"),
		Package: gproto.String("coinkeeper"),
		Syntax:  gproto.String("proto3"),
		Options: &descriptorpb.FileOptions{
			GoPackage: gproto.String("github.com/dmitrijs2005/coinkeeper/internal/proto"),
		},
		MessageType: []*descriptorpb.DescriptorProto{
			login,
			message("LoginResponse", accountFields()...),
			message("WhoAmIRequest"),
			message("WhoAmIResponse", accountFields()...),
			message("AddCoinsRequest", field("amount", 1, typeInt64)),
			message("AddCoinsResponse", field("coins", 1, typeInt64)),
			message("PingRequest"),
			message("PingResponse", field("status", 1, typeString)),
		},
		Service: []*descriptorpb.ServiceDescriptorProto{{
			Name: gproto.String("CoinKeeperService"),
			Method: []*descriptorpb.MethodDescriptorProto{
				method("Login", "LoginRequest", "LoginResponse"),
				method("WhoAmI", "WhoAmIRequest", "WhoAmIResponse"),
				method("AddCoins", "AddCoinsRequest", "AddCoinsResponse"),
				method("Ping", "PingRequest", "PingResponse"),
			},
		}},
	}
}
