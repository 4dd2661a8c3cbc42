// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package spirv reflects SPIR-V shader binaries into a descriptor layout.
//
// Reflect parses a SPIR-V module and produces a Layout: the shader's stage,
// render-target count, push-constant size, vertex input attributes, and a
// set/binding tree of named bindings whose types are described by
// recursively built, hash-consed Type trees. Reflection is a pure function:
// reflecting the same binary twice yields structurally equal layouts with
// pointer-equal Type nodes.
//
// The parser covers the instruction subset a descriptor reflector needs
// (names, decorations, types, constants, variables, entry points); function
// bodies are skipped.
package spirv
