// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package upload sends exported archives to the cloud-storage collaborator.
//
// The collaborator accepts a base64-encoded file payload plus a declared
// file-type label. Outbound calls are rate limited so batch exports cannot
// flood the storage service.
package upload
