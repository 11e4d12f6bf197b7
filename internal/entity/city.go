package entity

type City struct {
	Base
	Name    string
	Country string
}
