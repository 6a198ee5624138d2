// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"github.com/SoftbearStudios/tileworld/world"
	jsoniter "github.com/json-iterator/go"
	"reflect"
	"time"
	"unsafe"
)

// Make sure functions get run first
var json = func() jsoniter.API {
	neverEmpty := func(pointer unsafe.Pointer) bool { return false }

	// Encoders
	jsoniter.RegisterTypeEncoderFunc(reflect.TypeOf(world.Vec2f{}).String(), encodeVec2f, neverEmpty)
	jsoniter.RegisterTypeEncoderFunc(reflect.TypeOf(time.Duration(0)).String(), encodeDuration, neverEmpty)

	return jsoniter.Config{
		IndentionStep:                 0,
		MarshalFloatWith6Digits:       true,
		EscapeHTML:                    false,
		SortMapKeys:                   true,
		UseNumber:                     false,
		DisallowUnknownFields:         false,
		TagKey:                        "json",
		OnlyTaggedField:               false,
		ValidateJsonRawMessage:        false,
		ObjectFieldMustBeSimpleString: true,
		CaseSensitive:                 true,
	}.Froze()
}()

// encodeVec2f writes [x, y], which is shorter than an object.
func encodeVec2f(ptr unsafe.Pointer, stream *jsoniter.Stream) {
	vec := (*world.Vec2f)(ptr)
	stream.WriteArrayStart()
	stream.WriteFloat32(vec.X)
	stream.WriteMore()
	stream.WriteFloat32(vec.Y)
	stream.WriteArrayEnd()
}

// encodeDuration writes a string like "1.5ms".
func encodeDuration(ptr unsafe.Pointer, stream *jsoniter.Stream) {
	stream.WriteString((*time.Duration)(ptr).String())
}
