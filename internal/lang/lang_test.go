package lang

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repolens-dev/repolens/internal/model"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		path string
		want model.Language
		ok   bool
	}{
		{"cmd/main.go", model.LangGo, true},
		{"src/lib.rs", model.LangRust, true},
		{"pkg/__init__.py", model.LangPython, true},
		{"web/app.jsx", model.LangJavaScript, true},
		{"web/App.tsx", model.LangTypeScript, true},
		{"lib/worker.rb", model.LangRuby, true},
		{"src/Main.java", model.LangJava, true},
		{"src/Program.cs", model.LangCSharp, true},
		{"Sources/App.swift", model.LangSwift, true},
		{"README.md", "", false},
		{"Makefile", "", false},
		{"UPPER.GO", model.LangGo, true},
	}
	for _, tc := range cases {
		p, ok := Classify(tc.path)
		assert.Equal(t, tc.ok, ok, tc.path)
		if ok {
			assert.Equal(t, tc.want, p.Language, tc.path)
		}
	}
}

func TestIsAnchorPath(t *testing.T) {
	for _, p := range []string{"core/mod.rs", "pkg/__init__.py", "ui/index.js", "ui/index.ts"} {
		assert.True(t, IsAnchorPath(p), p)
	}
	// lib.rs anchors only at the crate root.
	assert.True(t, IsAnchorPath("src/lib.rs"))
	assert.True(t, IsAnchorPath("lib.rs"))
	assert.False(t, IsAnchorPath("crates/util/src/nested/lib.rs"))
	assert.False(t, IsAnchorPath("vendor/lib.rs"))

	assert.False(t, IsAnchorPath("cmd/main.go"))
	assert.False(t, IsAnchorPath("app/index.rb"))
}

func TestGoSymbols(t *testing.T) {
	content := `package server

import (
	"fmt"
	"net/http"

	"example.com/app/internal/store"
)

type Handler struct{}

type Reader interface {
	Read(p []byte) (int, error)
}

func New() *Handler { return &Handler{} }

func (h *Handler) serve(w http.ResponseWriter, r *http.Request) {
	fmt.Fprintln(w, "ok")
}

func helper() {}
`
	syms := extractGoSymbols(content)
	require.Len(t, syms, 5)

	assert.Equal(t, model.KindStruct, syms[0].Kind)
	assert.Equal(t, "Handler", syms[0].Name)
	assert.Equal(t, model.VisPublic, syms[0].Visibility)

	assert.Equal(t, model.KindInterface, syms[1].Kind)
	assert.Equal(t, "Reader", syms[1].Name)

	assert.Equal(t, model.KindFunction, syms[2].Kind)
	assert.Equal(t, "New", syms[2].Name)

	assert.Equal(t, model.KindMethod, syms[3].Kind)
	assert.Equal(t, "serve", syms[3].Name)
	assert.Equal(t, model.VisPrivate, syms[3].Visibility)

	assert.Equal(t, "helper", syms[4].Name)

	imports := extractGoImports(content)
	assert.Equal(t, []string{"fmt", "net/http", "example.com/app/internal/store"}, imports)
}

func TestRustSymbols(t *testing.T) {
	content := `use crate::store::Record;
use std::collections::HashMap;

mod inner;

pub struct Engine {
    cache: HashMap<String, Record>,
}

pub(crate) enum Mode { Fast, Full }

pub trait Runner {
    fn run(&self);
}

pub fn start() {}

impl Engine {
    fn tick(&mut self) {}
}
`
	syms := extractRustSymbols(content)
	require.Len(t, syms, 7)

	assert.Equal(t, model.KindModule, syms[0].Kind)
	assert.Equal(t, "inner", syms[0].Name)
	assert.Equal(t, model.VisPrivate, syms[0].Visibility)

	assert.Equal(t, model.KindStruct, syms[1].Kind)
	assert.Equal(t, model.VisPublic, syms[1].Visibility)

	assert.Equal(t, model.KindEnum, syms[2].Kind)
	assert.Equal(t, model.VisInternal, syms[2].Visibility)

	assert.Equal(t, model.KindTrait, syms[3].Kind)

	// fn inside the trait body is indented, recorded as a method.
	assert.Equal(t, "run", syms[4].Name)
	assert.Equal(t, model.KindMethod, syms[4].Kind)

	assert.Equal(t, "start", syms[5].Name)
	assert.Equal(t, model.KindFunction, syms[5].Kind)

	assert.Equal(t, "tick", syms[6].Name)
	assert.Equal(t, model.KindMethod, syms[6].Kind)

	imports := extractRustImports(content)
	assert.Equal(t, []string{"crate::store::Record", "std::collections::HashMap", "mod inner"}, imports)
}

func TestPythonSymbols(t *testing.T) {
	content := `import os
import json, sys
from app.engine import run
from .util import fmt
from . import siblings

class Runner:
    def start(self):
        pass

    def _tick(self):
        pass

def main():
    pass

def _helper():
    pass
`
	syms := extractPythonSymbols(content)
	require.Len(t, syms, 5)

	assert.Equal(t, model.KindClass, syms[0].Kind)
	assert.Equal(t, "Runner", syms[0].Name)

	assert.Equal(t, model.KindMethod, syms[1].Kind)
	assert.Equal(t, "start", syms[1].Name)
	assert.Equal(t, model.VisPublic, syms[1].Visibility)

	assert.Equal(t, "_tick", syms[2].Name)
	assert.Equal(t, model.VisPrivate, syms[2].Visibility)

	assert.Equal(t, model.KindFunction, syms[3].Kind)
	assert.Equal(t, "main", syms[3].Name)

	assert.Equal(t, model.VisPrivate, syms[4].Visibility)

	imports := extractPythonImports(content)
	assert.Equal(t, []string{"os", "json", "sys", "app.engine", ".util", "."}, imports)
}

func TestJavaScriptSymbols(t *testing.T) {
	content := `import { render } from './render';
import fs from 'fs';
export { helpers } from './helpers';
const glob = require('glob');

export function start(opts) {}

export class Widget {
  draw() {}
}

const tick = (dt) => dt * 2;

export const scale = x => x;

function internalOnly() {}
`
	syms := extractJavaScriptSymbols(content)
	require.Len(t, syms, 5)

	assert.Equal(t, "start", syms[0].Name)
	assert.Equal(t, model.VisPublic, syms[0].Visibility)

	assert.Equal(t, model.KindClass, syms[1].Kind)
	assert.Equal(t, "Widget", syms[1].Name)

	assert.Equal(t, "tick", syms[2].Name)
	assert.Equal(t, model.VisPrivate, syms[2].Visibility)

	assert.Equal(t, "scale", syms[3].Name)
	assert.Equal(t, model.VisPublic, syms[3].Visibility)

	assert.Equal(t, "internalOnly", syms[4].Name)

	imports := extractJavaScriptImports(content)
	assert.Equal(t, []string{"./render", "fs", "./helpers", "glob"}, imports)
}

func TestTypeScriptSymbols(t *testing.T) {
	content := `import { api } from './api';

export interface Shape {
  area(): number;
}

export enum Mode { Fast, Full }

namespace util {
}

export const area = (s: Shape): number => s.area();
`
	syms := extractTypeScriptSymbols(content)
	require.Len(t, syms, 4)

	assert.Equal(t, model.KindInterface, syms[0].Kind)
	assert.Equal(t, "Shape", syms[0].Name)

	assert.Equal(t, model.KindEnum, syms[1].Kind)

	assert.Equal(t, model.KindModule, syms[2].Kind)
	assert.Equal(t, "util", syms[2].Name)
	assert.Equal(t, model.VisPrivate, syms[2].Visibility)

	assert.Equal(t, model.KindFunction, syms[3].Kind)
	assert.Equal(t, "area", syms[3].Name)
}

func TestRubySymbols(t *testing.T) {
	content := `require 'json'
require_relative 'worker'

module Billing
  class Invoice
    def total
      0
    end

    private

    def recalc
    end
  end
end

def toplevel
end
`
	syms := extractRubySymbols(content)
	require.Len(t, syms, 5)

	assert.Equal(t, model.KindModule, syms[0].Kind)
	assert.Equal(t, "Billing", syms[0].Name)

	assert.Equal(t, model.KindClass, syms[1].Kind)
	assert.Equal(t, "Invoice", syms[1].Name)

	assert.Equal(t, "total", syms[2].Name)
	assert.Equal(t, model.VisPublic, syms[2].Visibility)

	assert.Equal(t, "recalc", syms[3].Name)
	assert.Equal(t, model.VisPrivate, syms[3].Visibility)

	assert.Equal(t, "toplevel", syms[4].Name)
	assert.Equal(t, model.KindFunction, syms[4].Kind)

	imports := extractRubyImports(content)
	assert.Equal(t, []string{"json", "./worker"}, imports)
}

func TestJavaSymbols(t *testing.T) {
	content := `package com.example.app;

import java.util.List;
import static java.util.Objects.requireNonNull;

public class OrderService {
    private List<String> items;

    public void addItem(String item) {
        if (item == null) {
            return;
        }
    }

    protected int count() {
        return items.size();
    }
}

interface Priced {
    double price();
}
`
	syms := extractJavaSymbols(content)

	var names []string
	for _, s := range syms {
		names = append(names, s.Name)
	}
	assert.Contains(t, names, "OrderService")
	assert.Contains(t, names, "addItem")
	assert.Contains(t, names, "count")
	assert.Contains(t, names, "Priced")
	assert.NotContains(t, names, "if")

	for _, s := range syms {
		switch s.Name {
		case "OrderService":
			assert.Equal(t, model.KindClass, s.Kind)
			assert.Equal(t, model.VisPublic, s.Visibility)
		case "count":
			assert.Equal(t, model.VisInternal, s.Visibility)
		case "Priced":
			assert.Equal(t, model.KindInterface, s.Kind)
			assert.Equal(t, model.VisInternal, s.Visibility)
		}
	}

	imports := extractJavaImports(content)
	assert.Equal(t, []string{"java.util.List", "java.util.Objects.requireNonNull"}, imports)
}

func TestCSharpSymbols(t *testing.T) {
	content := `using System;
using System.Collections.Generic;

namespace App.Billing
{
    public record Money(decimal Amount);

    public class InvoiceService
    {
        public void Add(string item)
        {
            foreach (var c in item) { }
        }

        private int Count()
        {
            return 0;
        }
    }

    internal enum Mode { Fast, Full }
}
`
	syms := extractCSharpSymbols(content)

	var names []string
	for _, s := range syms {
		names = append(names, s.Name)
	}
	assert.Contains(t, names, "App.Billing")
	assert.Contains(t, names, "Money")
	assert.Contains(t, names, "InvoiceService")
	assert.Contains(t, names, "Add")
	assert.Contains(t, names, "Count")
	assert.Contains(t, names, "Mode")
	assert.NotContains(t, names, "foreach")

	for _, s := range syms {
		switch s.Name {
		case "App.Billing":
			assert.Equal(t, model.KindModule, s.Kind)
		case "Money":
			assert.Equal(t, model.KindStruct, s.Kind)
		case "Count":
			assert.Equal(t, model.VisPrivate, s.Visibility)
		case "Mode":
			assert.Equal(t, model.VisInternal, s.Visibility)
		}
	}

	imports := extractCSharpImports(content)
	assert.Equal(t, []string{"System", "System.Collections.Generic"}, imports)
}

func TestSwiftSymbols(t *testing.T) {
	content := `import Foundation
import UIKit

public class SessionManager {
    private var token: String?

    public func refresh() {
    }

    init(token: String?) {
        self.token = token
    }
}

struct Config {
}

enum State {
    case idle
}

protocol Refreshing {
}

extension SessionManager {
}

public func bootstrap() {
}
`
	syms := extractSwiftSymbols(content)

	var names []string
	for _, s := range syms {
		names = append(names, s.Name)
	}
	assert.Contains(t, names, "SessionManager")
	assert.Contains(t, names, "refresh")
	assert.Contains(t, names, "init")
	assert.Contains(t, names, "Config")
	assert.Contains(t, names, "State")
	assert.Contains(t, names, "Refreshing")
	assert.Contains(t, names, "bootstrap")

	for _, s := range syms {
		switch s.Name {
		case "SessionManager":
			assert.Equal(t, model.KindClass, s.Kind)
			assert.Equal(t, model.VisPublic, s.Visibility)
		case "refresh":
			assert.Equal(t, model.KindMethod, s.Kind)
		case "Config":
			assert.Equal(t, model.VisInternal, s.Visibility)
		case "Refreshing":
			assert.Equal(t, model.KindTrait, s.Kind)
		case "bootstrap":
			assert.Equal(t, model.KindFunction, s.Kind)
		}
	}

	imports := extractSwiftImports(content)
	assert.Equal(t, []string{"Foundation", "UIKit"}, imports)
}

func TestExtractionToleratesGarbage(t *testing.T) {
	garbage := "\x00\x01 not source ((( def class func fn \n\tclass\n"
	for _, p := range Profiles() {
		assert.NotPanics(t, func() { p.ExtractSymbols(garbage) }, string(p.Language))
		assert.NotPanics(t, func() { p.ExtractImports(garbage) }, string(p.Language))
	}
}
