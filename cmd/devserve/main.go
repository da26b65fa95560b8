// CLASSIFICATION: COMMUNITY
// Filename: main.go v0.6
// Author: Lukas Bower
// Date Modified: 2026-10-16
// License: SPDX-License-Identifier: MIT OR Apache-2.0

// Command devserve serves the parent directory on port 8080 for local
// development of the grammar editor.
package main

import "devserve/internal/tooling"

func main() { tooling.Execute() }
