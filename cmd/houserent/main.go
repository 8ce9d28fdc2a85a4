package main

import "github.com/RafiurRahmanSaikat/house-rent-backend/cmd/houserent/commands"

func main() {
	commands.Execute()
}
