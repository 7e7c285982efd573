/*
 * MIT License
 *
 * Copyright (c) 2022 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

// Package viper wraps a single *viper.Viper instance behind a narrow interface
// so config components never import spf13/viper directly.
package viper

import (
	spfvpr "github.com/spf13/viper"
)

// FuncViper is stored by Config and handed to every component at Init time.
type FuncViper func() Viper

// Viper exposes the subset of *viper.Viper used by components, plus access
// to the underlying instance for flag binding.
type Viper interface {
	Viper() *spfvpr.Viper
	IsSet(key string) bool
	Get(key string) interface{}
	GetBool(key string) bool
	GetString(key string) string
	GetInt(key string) int
	UnmarshalKey(key string, rawVal interface{}) error
	Unmarshal(rawVal interface{}) error
}

type viperWrap struct {
	v *spfvpr.Viper
}

// New wraps an existing *viper.Viper instance. If v is nil, a fresh instance
// is created with viper.New().
func New(v *spfvpr.Viper) Viper {
	if v == nil {
		v = spfvpr.New()
	}

	return &viperWrap{v: v}
}

func (o *viperWrap) Viper() *spfvpr.Viper {
	return o.v
}

func (o *viperWrap) IsSet(key string) bool {
	return o.v.IsSet(key)
}

func (o *viperWrap) Get(key string) interface{} {
	return o.v.Get(key)
}

func (o *viperWrap) GetBool(key string) bool {
	return o.v.GetBool(key)
}

func (o *viperWrap) GetString(key string) string {
	return o.v.GetString(key)
}

func (o *viperWrap) GetInt(key string) int {
	return o.v.GetInt(key)
}

func (o *viperWrap) UnmarshalKey(key string, rawVal interface{}) error {
	return o.v.UnmarshalKey(key, rawVal)
}

func (o *viperWrap) Unmarshal(rawVal interface{}) error {
	return o.v.Unmarshal(rawVal)
}
