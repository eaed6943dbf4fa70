package main

import (
	"bufio"
	"flag"
	"fmt"
	"holdem-server/internal/config"
	"holdem-server/internal/jwt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

var playerID = flag.Int64("id", 0, "the player id to sign a token for")
var name = flag.String("name", "", "the display name (prompted when empty)")

func main() {
	flag.Parse()

	if *playerID <= 0 {
		logrus.Fatal("-id must be a positive number")
	}

	if *name == "" {
		answer, err := getInput("Name")
		if err != nil {
			logrus.WithError(err).Fatal("could not get answer")
		}

		if answer == "" {
			os.Exit(1)
		}
		*name = answer
	}

	cfg := config.Instance()
	keys, err := jwt.LoadKeys(cfg.JWT.PublicKey, cfg.JWT.PrivateKey)
	if err != nil {
		logrus.WithError(err).Fatal("could not load keys")
	}

	token, err := keys.Sign(*playerID, *name)
	if err != nil {
		logrus.WithError(err).Fatal("could not sign token")
	}

	fmt.Println(token)
}

func getInput(question string) (string, error) {
	fmt.Printf("%s: ", question)
	reader := bufio.NewReader(os.Stdin)
	str, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	str = strings.TrimRight(str, "\r\n")

	return str, nil
}
