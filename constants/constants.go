package constants

import (
	"os"
	"path/filepath"
)

const DatasetName = "TONAS"

const (
	AudioSuffix  = ".wav"
	F0Suffix     = ".f0.Corrected"
	NotesSuffix  = ".notes.Corrected"
	MetadataFile = "TONAS-Metadata.txt"
	IndexFile    = "index.gob"
)

// GetDefaultDataHome is where the dataset lives when nothing else is
// configured.
func GetDefaultDataHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join("mir_datasets", DatasetName)
	}
	return filepath.Join(home, "mir_datasets", DatasetName)
}

const DownloadInfo = `
Unfortunately, the TONAS dataset is not available to be shared openly. However,
you can request access to the dataset in the following link, providing a brief
explanation of what you are going to use the dataset for:
==> https://zenodo.org/record/1290722
Then, unzip the dataset and locate it to %s. If you unzip it into a different path,
please remember to set the right data home (--data-home or TONAS_HOME).
`

const LicenseInfo = `
The TONAS dataset is offered free of charge for internal non-commercial use only. You can not redistribute it nor
modify it. Dataset by COFLA team. Copyright © 2012 COFLA project, Universidad de Sevilla. Distribution rights granted
to Music Technology Group, Universitat Pompeu Fabra. All Rights Reserved.
`

const Bibtex = `
@dataset{cofla_computational_analysis_of_flamenco_2013_1290722,
    author       = {COFLA (COmputational analysis of FLAmenco music) team},
    title        = {{TONAS: a dataset of flamenco a cappella sung
                     melodies with corresponding manual transcriptions}},
    month        = mar,
    year         = 2013,
    publisher    = {Zenodo},
    version      = {1.0},
    doi          = {10.5281/zenodo.1290722},
    url          = {https://doi.org/10.5281/zenodo.1290722}
}
@inproceedings{inproceedings,
    author = {Mora, Joaquin and Gómez, Francisco and Gómez, Emilia
              and Borrego, Francisco Javier and Díaz-Báñez, José},
    year = {2010},
    month = {01},
    pages = {351-356},
    title = {Characterization and Similarity in A Cappella Flamenco Cantes.}
}
@ARTICLE{6791736,
    author = {E. {Gómez} and J. {Bonada}},
    journal = {Computer Music Journal},
    title = {Towards Computer-Assisted Flamenco Transcription: An Experimental
           Comparison of Automatic Transcription Algorithms as Applied to A
           Cappella Singing},
    year = {2013},
    volume = {37},
    number = {2},
    pages = {73-90},
    doi = {10.1162/COMJ_a_00180}}
`

// DynamoDB batch limits.
const (
	MaxBatchWrite = 25
	MaxBatchGet   = 100
)
