// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// maxUploadMemory bounds how much of a multipart body is held in memory;
// larger files spill to temp files.
const maxUploadMemory = 32 << 20

// parseBody parses a multipart or urlencoded request body and returns the
// posted values. The admin UI submits posts as multipart form data so the
// featured image can ride along.
func parseBody(r *http.Request) (url.Values, error) {
	ct := r.Header.Get("Content-Type")
	if strings.HasPrefix(ct, "multipart/form-data") {
		if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
			return nil, err
		}
	} else if err := r.ParseForm(); err != nil {
		return nil, err
	}
	return r.PostForm, nil
}

// formFile returns the uploaded file for the given field, or nils when
// the field is absent or the request isn't multipart.
func formFile(r *http.Request, field string) (multipart.File, *multipart.FileHeader, error) {
	file, header, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}
	return file, header, nil
}

// formBool coerces the string form encoding of a boolean: only "1" and
// "true" count as true, everything else is false.
func formBool(value string) bool {
	return value == "1" || value == "true"
}

// formInt parses an optional integer field. The empty string maps to nil.
func formInt(value string) (*int, error) {
	if value == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// formUUID parses an optional uuid field. Empty or unparseable values map
// to nil rather than an error, mirroring how the previous backend coerced
// the category selector's value.
func formUUID(value string) *uuid.UUID {
	if value == "" {
		return nil
	}
	id, err := uuid.Parse(value)
	if err != nil {
		return nil
	}
	return &id
}
