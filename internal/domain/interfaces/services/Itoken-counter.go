package Iservices

type ITokenCounter interface {
	Count(text string) int
}
