package java_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/symdiff/inspector/info"
	"github.com/viant/symdiff/inspector/java"
	"github.com/viant/symdiff/inspector/symbol"
)

const personSource = `package com.example;

import java.util.List;
import java.io.*;

public class Person extends Base implements Named, Comparable<Person> {
    private String name;
    public int age = 1;

    public Person(String name) {
        this.name = name;
    }

    public String getName() {
        return name;
    }

    void reset() {
        age = 0;
    }

    static class Builder {
    }
}

interface Named {
    String getName();
}
`

func TestInspector_Inspect(t *testing.T) {
	inspector := java.NewInspector(info.DefaultConfig())
	file, err := inspector.Inspect(context.Background(), []byte(personSource))
	require.NoError(t, err)

	assert.Equal(t, []symbol.Import{{Name: "List", Path: "java.util.List"}, {Name: "", Path: "java.io.*"}}, file.Imports)

	person := file.Lookup("Person")
	require.NotNil(t, person)
	assert.Equal(t, symbol.KindClass, person.Kind)
	assert.True(t, person.Exported)
	assert.Equal(t, "Base", person.Extends)
	assert.Equal(t, []string{"Named", "Comparable<Person>"}, person.Implements)

	name := person.Member("name")
	require.NotNil(t, name)
	assert.Equal(t, symbol.MemberProperty, name.Kind)
	assert.False(t, name.Exported)

	age := person.Member("age")
	require.NotNil(t, age)
	assert.True(t, age.Exported)
	assert.Equal(t, "1", age.Body)

	constructor := person.Member("Person(String)")
	require.NotNil(t, constructor)
	assert.Equal(t, symbol.MemberConstructor, constructor.Kind)

	getName := person.Member("getName()")
	require.NotNil(t, getName)
	assert.Equal(t, "public String getName()", getName.Signature)
	assert.Equal(t, "return name;", getName.Body)
	assert.True(t, getName.Exported)

	reset := person.Member("reset()")
	require.NotNil(t, reset)
	assert.False(t, reset.Exported)

	builder := file.Lookup("Person.Builder")
	require.NotNil(t, builder)
	assert.False(t, builder.IsTopLevel())

	named := file.Lookup("Named")
	require.NotNil(t, named)
	assert.Equal(t, symbol.KindInterface, named.Kind)
	assert.False(t, named.Exported)
	method := named.Member("getName()")
	require.NotNil(t, method)
	assert.True(t, method.Exported, "interface methods are implicitly public")
}

func TestInspector_Inspect_Overloads(t *testing.T) {
	const source = `public class Codec {
    public void write(int value) {}
    public void write(String value, byte[] raw) {}
    public void write(java.util.List<String> values, Object... rest) {}
    public void write(int[] values) {}
}
`
	inspector := java.NewInspector(info.DefaultConfig())
	file, err := inspector.Inspect(context.Background(), []byte(source))
	require.NoError(t, err)

	codec := file.Lookup("Codec")
	require.NotNil(t, codec)
	var names []string
	for _, member := range codec.Members {
		names = append(names, member.Name)
	}
	assert.Equal(t, []string{
		"write(int)",
		"write(String,byte[])",
		"write(java.util.List<String>,Object...)",
		"write(int[])",
	}, names)
	assert.NotNil(t, file.Lookup("Codec.write(int)"))
	assert.NotNil(t, file.Lookup("Codec.write(int[])"))
}
