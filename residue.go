/*
 * residue.go, part of rta.
 *
 * Copyright 2024 The rta developers
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package rta

import (
	"fmt"
	"strings"
)

// three-letter to one-letter codes for the standard aminoacids, plus the
// usual alternate protonation-state names found in MD topologies.
var residueCode1 = map[string]byte{
	"ALA": 'A',
	"ARG": 'R',
	"ASN": 'N',
	"ASP": 'D',
	"ASH": 'D', //protonated ASP
	"CYS": 'C',
	"CYX": 'C', //disulfide-bonded
	"CYM": 'C',
	"GLN": 'Q',
	"GLU": 'E',
	"GLH": 'E', //protonated GLU
	"GLY": 'G',
	"HIS": 'H',
	"HID": 'H',
	"HIE": 'H',
	"HIP": 'H',
	"HSD": 'H', //CHARMM naming
	"HSE": 'H',
	"HSP": 'H',
	"ILE": 'I',
	"LEU": 'L',
	"LYS": 'K',
	"LYN": 'K',
	"MET": 'M',
	"PHE": 'F',
	"PRO": 'P',
	"SER": 'S',
	"THR": 'T',
	"TRP": 'W',
	"TYR": 'Y',
	"VAL": 'V',
}

// ResidueCode1 returns the one-letter code for a three-letter residue
// name, accepting the common MD protonation-variant names (HSD, ASH,
// etc). The lookup is case-insensitive.
func ResidueCode1(resname string) (byte, error) {
	c, ok := residueCode1[strings.ToUpper(resname)]
	if !ok {
		return 0, fmt.Errorf("rta.ResidueCode1: unknown residue name %q", resname)
	}
	return c, nil
}

// ResidueLabel builds the compact residue label used throughout the
// library and in output file names, e.g. ("TRP", 313) -> "W313".
// Unknown residue names keep their full name, e.g. "CHL1313".
func ResidueLabel(resname string, resid int) string {
	c, err := ResidueCode1(resname)
	if err != nil {
		return fmt.Sprintf("%s%d", strings.ToUpper(resname), resid)
	}
	return fmt.Sprintf("%c%d", c, resid)
}
