package jsx_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/symdiff/inspector/info"
	"github.com/viant/symdiff/inspector/jsx"
	"github.com/viant/symdiff/inspector/symbol"
)

const widgetSource = `import React from 'react';
import { useState } from "./hooks";

export class Widget extends React.Component {
  count = 0;
  #secret = 1;

  constructor(props) {
    super(props);
  }

  get size() {
    return this.count;
  }

  render() {
    return null;
  }
}

function helper(a, b) {
  return a + b;
}

export const add = (a, b) => a + b;
`

func TestInspector_Inspect(t *testing.T) {
	inspector := jsx.NewInspector(info.DefaultConfig())
	file, err := inspector.Inspect(context.Background(), []byte(widgetSource))
	require.NoError(t, err)

	assert.Equal(t, []symbol.Import{{Name: "React", Path: "react"}, {Name: "", Path: "./hooks"}}, file.Imports)

	widget := file.Lookup("Widget")
	require.NotNil(t, widget)
	assert.True(t, widget.Exported)
	assert.Equal(t, "React.Component", widget.Extends)

	count := widget.Member("count")
	require.NotNil(t, count)
	assert.Equal(t, symbol.MemberProperty, count.Kind)
	assert.Equal(t, "0", count.Body)
	assert.True(t, count.Exported)

	secret := widget.Member("#secret")
	require.NotNil(t, secret)
	assert.False(t, secret.Exported)

	constructor := widget.Member("constructor")
	require.NotNil(t, constructor)
	assert.Equal(t, symbol.MemberConstructor, constructor.Kind)

	size := widget.Member("get size")
	require.NotNil(t, size)
	assert.Equal(t, symbol.MemberGetter, size.Kind)

	render := widget.Member("render")
	require.NotNil(t, render)
	assert.Equal(t, "render()", render.Signature)
	assert.Equal(t, "return null;", render.Body)
	assert.NotNil(t, file.Lookup("Widget.render"))

	helper := file.Lookup("helper")
	require.NotNil(t, helper)
	assert.Equal(t, symbol.KindFunction, helper.Kind)
	assert.False(t, helper.Exported)
	assert.Equal(t, "return a + b;", helper.Body)

	add := file.Lookup("add")
	require.NotNil(t, add)
	assert.True(t, add.Exported)
	assert.Equal(t, "a + b", add.Body)
}
