package main

import "github.com/khaledAlzeer/BlogWithUsers/web"

func main() {
	web.RunApp()
}
