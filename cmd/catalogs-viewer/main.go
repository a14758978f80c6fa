package main

import (
	"k8s.io/klog/v2"

	"github.com/ebeaudoi/openshift-catalogs-viewer/pkg/cli"
)

func main() {
	rootCmd := cli.NewViewerCommand()
	checkErr(rootCmd.Execute())
}

func checkErr(err error) {
	if err != nil {
		klog.Fatal(err)
	}
}
