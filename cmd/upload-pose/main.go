// Command upload-pose registers a reference pose image with the pose
// service so it can be practiced against.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/yogalign/yogalign/internal/config"
	"github.com/yogalign/yogalign/internal/log"
	"github.com/yogalign/yogalign/pkg/poseapi"
)

func main() {
	serverURL := flag.String("server", config.ServerURL(config.DefaultServerURL), "Pose service base URL")
	imagePath := flag.String("image", "", "Path to the reference pose image (JPEG)")
	asana := flag.String("asana", "", "Asana the pose belongs to")
	poseName := flag.String("name", "", "Human-readable pose name")
	poseNumber := flag.Int("number", 1, "Pose number within the asana")
	flag.Parse()

	log.Init("info")

	if *imagePath == "" || *asana == "" || *poseName == "" {
		fmt.Fprintln(os.Stderr, "Error: -image, -asana and -name are required")
		flag.Usage()
		os.Exit(1)
	}

	image, err := os.ReadFile(*imagePath)
	if err != nil {
		log.Error("read image", "path", *imagePath, "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	client := poseapi.NewClient(poseapi.WithBaseURL(*serverURL))
	if err := client.UploadPose(ctx, image, *asana, *poseName, *poseNumber); err != nil {
		log.Error("upload failed", "error", err)
		os.Exit(1)
	}

	log.Info("pose uploaded", "asana", *asana, "name", *poseName, "number", *poseNumber)
}
