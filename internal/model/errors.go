package model

import "errors"

var ErrNoRecord = errors.New("no record")
var ErrAlreadyExists = errors.New("entity already exists")
var ErrInvalidRange = errors.New("event ends before it starts")
